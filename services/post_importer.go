package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"wp-importer/config"
	"wp-importer/db"
	"wp-importer/dto"
	"wp-importer/idgen"
	"wp-importer/models"
	"wp-importer/repositories"
	"wp-importer/richtext"
)

var (
	// ErrPostInsert means the posts row could not be written. Nothing after it ran.
	ErrPostInsert = errors.New("failed to create post")
	// ErrInvalidTimestamp means created_at did not match the legacy layout.
	// The post row and the steps before the parse may already exist.
	ErrInvalidTimestamp = errors.New("invalid created_at timestamp")

	errTagNotFound = errors.New("tag not found")
)

const (
	stepInsertPost              = "insert_post"
	stepUpdateExcerpt           = "update_excerpt"
	stepInsertPostAuthor        = "insert_post_author"
	stepInsertPostTag           = "insert_post_tag"
	stepParseCreatedAt          = "parse_created_at"
	stepInsertMobiledocRevision = "insert_mobiledoc_revision"
	stepInsertPostRevision      = "insert_post_revision"
	stepInsertPostMeta          = "insert_post_meta"
)

// ImportOptions configures how payload fields are mapped onto Ghost rows.
type ImportOptions struct {
	FeatureImagePrefix string
	TimestampLayout    string
	MetaTitleMaxLength int
}

func ImportOptionsFromConfig(cfg config.ImportConfig) ImportOptions {
	return ImportOptions{
		FeatureImagePrefix: cfg.FeatureImagePrefix,
		TimestampLayout:    cfg.TimestampLayout,
		MetaTitleMaxLength: cfg.MetaTitleMaxLength,
	}
}

// PostImporter writes one WordPress post and its dependent rows into Ghost.
//
// Only two steps stop the import: the posts insert and the created_at parse.
// Every other step is attempted once, logged when it fails, and recorded in
// the ImportReport.
type PostImporter struct {
	authors *AuthorResolver
	tags    *TagResolver
	opts    ImportOptions

	newID   func() string
	newUUID func() string
	now     func() time.Time
}

func NewPostImporter(authors *AuthorResolver, tags *TagResolver, opts ImportOptions) *PostImporter {
	if opts.TimestampLayout == "" {
		opts.TimestampLayout = config.DefaultTimestampLayout
	}
	if opts.MetaTitleMaxLength <= 0 {
		opts.MetaTitleMaxLength = config.DefaultMetaTitleMaxLength
	}
	return &PostImporter{
		authors: authors,
		tags:    tags,
		opts:    opts,
		newID:   idgen.New,
		newUUID: uuid.NewString,
		now:     time.Now,
	}
}

// postStep is one write of the import. When abort is set a failure ends the
// import and is returned to the caller.
type postStep struct {
	name  string
	abort bool
	run   func(ctx context.Context) error
}

// Import runs the pipeline on gw, a single connection owned by the caller.
// The report is always returned, also on failure.
func (p *PostImporter) Import(ctx context.Context, gw db.Gateway, req dto.PostImportRequest) (*dto.PostReply, *models.ImportReport, error) {
	started := p.now()
	posts := repositories.NewPostRepository(gw)

	resolution := p.authors.Resolve(ctx, repositories.NewAuthorRepository(gw), req.AuthorID.String())
	authorID := resolution.AuthorID

	postID := p.newID()
	report := &models.ImportReport{
		PostID:         postID,
		Title:          req.Title,
		Slug:           req.Slug,
		ExternalAuthor: req.AuthorID.String(),
		AuthorID:       authorID,
		AuthorFallback: resolution.Fallback,
		Steps:          make([]models.StepOutcome, 0, 8),
		StartedAt:      started,
	}

	post := &models.Post{
		ID:                   postID,
		UUID:                 p.newUUID(),
		Title:                req.Title,
		Slug:                 req.Slug,
		HTML:                 req.HTML,
		Lexical:              richtext.LexicalJSON(req.HTML),
		CreatedAt:            req.CreatedAt,
		UpdatedAt:            req.UpdatedAt,
		CreatedBy:            authorID,
		PublishedBy:          authorID,
		PublishedAt:          req.UpdatedAt,
		FeatureImage:         p.featureImage(req.ImageURL),
		EmailRecipientFilter: models.EmailRecipientFilterAll,
		Status:               models.PostStatusPublished,
		Visibility:           models.PostVisibilityPublic,
	}
	revisionDoc := richtext.MobiledocRevision(req.HTML)

	var createdAtTS int64

	steps := []postStep{
		{
			name:  stepInsertPost,
			abort: true,
			run: func(ctx context.Context) error {
				if err := posts.InsertPost(ctx, post); err != nil {
					return fmt.Errorf("%w: %w", ErrPostInsert, err)
				}
				return nil
			},
		},
		{
			name: stepUpdateExcerpt,
			run: func(ctx context.Context) error {
				return posts.UpdateExcerpt(ctx, postID, req.Excerpt)
			},
		},
		{
			name: stepInsertPostAuthor,
			run: func(ctx context.Context) error {
				return posts.InsertPostAuthor(ctx, models.PostAuthor{
					ID:       p.newID(),
					PostID:   postID,
					AuthorID: authorID,
				})
			},
		},
	}

	tagLookup := repositories.NewTagRepository(gw)
	for _, label := range SplitTagLabels(req.Tags) {
		steps = append(steps, postStep{
			name: stepInsertPostTag + ":" + label,
			run: func(ctx context.Context) error {
				tagID, ok := p.tags.Resolve(ctx, tagLookup, label)
				if !ok {
					return errTagNotFound
				}
				return posts.InsertPostTag(ctx, models.PostTag{
					ID:     p.newID(),
					PostID: postID,
					TagID:  tagID,
				})
			},
		})
	}

	steps = append(steps,
		postStep{
			name:  stepParseCreatedAt,
			abort: true,
			run: func(context.Context) error {
				t, err := time.ParseInLocation(p.opts.TimestampLayout, req.CreatedAt, time.UTC)
				if err != nil {
					return fmt.Errorf("%w: %q: %w", ErrInvalidTimestamp, req.CreatedAt, err)
				}
				createdAtTS = t.Unix()
				return nil
			},
		},
		postStep{
			name: stepInsertMobiledocRevision,
			run: func(ctx context.Context) error {
				return posts.InsertMobiledocRevision(ctx, models.MobiledocRevision{
					ID:          p.newID(),
					PostID:      postID,
					Mobiledoc:   revisionDoc,
					CreatedAtTS: createdAtTS,
					CreatedAt:   req.CreatedAt,
				})
			},
		},
		postStep{
			name: stepInsertPostRevision,
			run: func(ctx context.Context) error {
				return posts.InsertPostRevision(ctx, models.PostRevision{
					ID:          p.newID(),
					PostID:      postID,
					Lexical:     revisionDoc,
					CreatedAtTS: createdAtTS,
					CreatedAt:   req.CreatedAt,
					AuthorID:    authorID,
					Title:       req.Title,
					PostStatus:  models.PostStatusPublished,
					Reason:      models.RevisionReasonPublished,
				})
			},
		},
		postStep{
			name: stepInsertPostMeta,
			run: func(ctx context.Context) error {
				return posts.InsertPostMeta(ctx, models.PostMeta{
					ID:              p.newID(),
					PostID:          postID,
					MetaTitle:       MetaTitle(req.Title, req.MetaTitle, p.opts.MetaTitleMaxLength),
					MetaDescription: req.Excerpt,
				})
			},
		},
	)

	for _, st := range steps {
		err := st.run(ctx)
		report.Steps = append(report.Steps, p.outcome(postID, st, err))
		if err != nil && st.abort {
			switch {
			case errors.Is(err, ErrInvalidTimestamp):
				report.Outcome = models.OutcomeInvalidTimestamp
			default:
				report.Outcome = models.OutcomePostInsertFailed
			}
			p.finish(report)
			return nil, report, err
		}
	}

	report.Outcome = models.OutcomeImported
	p.finish(report)

	return &dto.PostReply{
		ID:        postID,
		Title:     req.Title,
		Slug:      req.Slug,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
		AuthorID:  authorID,
	}, report, nil
}

func (p *PostImporter) outcome(postID string, st postStep, err error) models.StepOutcome {
	out := models.StepOutcome{Name: st.name, Critical: st.abort, OK: err == nil}
	if err == nil {
		return out
	}

	out.Error = err.Error()
	fields := config.Fields{"post_id": postID, "step": st.name, "error": out.Error}
	switch {
	case errors.Is(err, errTagNotFound):
		out.Skipped = true
	case st.abort:
		config.ErrorWithFields("post import aborted", fields)
	default:
		config.ErrorWithFields("post import step failed, continuing", fields)
	}
	return out
}

func (p *PostImporter) finish(report *models.ImportReport) {
	report.CompletedAt = p.now()
	report.DurationMs = report.CompletedAt.Sub(report.StartedAt).Milliseconds()

	fields := config.Fields{
		"post_id":         report.PostID,
		"slug":            report.Slug,
		"author_id":       report.AuthorID,
		"author_fallback": report.AuthorFallback,
		"outcome":         string(report.Outcome),
		"steps":           len(report.Steps),
		"duration_ms":     report.DurationMs,
	}
	if failed := report.FailedSteps(); len(failed) > 0 {
		fields["failed_steps"] = failed
	}
	if skipped := report.SkippedSteps(); len(skipped) > 0 {
		fields["skipped_steps"] = skipped
	}
	if report.Outcome == models.OutcomeImported {
		config.InfoWithFields("post import finished", fields)
		return
	}
	config.ErrorWithFields("post import failed", fields)
}

func (p *PostImporter) featureImage(imageURL *string) string {
	if imageURL == nil || *imageURL == "" {
		return ""
	}
	return p.opts.FeatureImagePrefix + *imageURL
}

// MetaTitle picks posts_meta.meta_title. An explicit value wins. Otherwise
// titles up to maxLen runes are copied and longer titles give an empty meta
// title (they are not truncated).
func MetaTitle(title string, explicit *string, maxLen int) string {
	if explicit != nil {
		return *explicit
	}
	if utf8.RuneCountInString(title) > maxLen {
		return ""
	}
	return title
}

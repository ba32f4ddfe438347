package repositories

import (
	"context"
	"fmt"

	"wp-importer/db"
	"wp-importer/models"
)

const (
	insertPostQuery              = `INSERT INTO posts (id, uuid, title, slug, html, lexical, created_at, updated_at, created_by, published_by, published_at, feature_image, email_recipient_filter, status, visibility) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateExcerptQuery           = `UPDATE posts SET custom_excerpt = ? WHERE id = ?`
	insertPostAuthorQuery        = `INSERT INTO posts_authors (id, post_id, author_id, sort_order) VALUES (?, ?, ?, ?)`
	insertPostTagQuery           = `INSERT INTO posts_tags (id, post_id, tag_id, sort_order) VALUES (?, ?, ?, ?)`
	insertMobiledocRevisionQuery = `INSERT INTO mobiledoc_revisions (id, post_id, mobiledoc, created_at_ts, created_at) VALUES (?, ?, ?, ?, ?)`
	insertPostRevisionQuery      = `INSERT INTO post_revisions (id, post_id, lexical, created_at_ts, created_at, author_id, title, post_status, reason) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertPostMetaQuery          = `INSERT INTO posts_meta (id, post_id, meta_title, meta_description) VALUES (?, ?, ?, ?)`
)

// PostRepository writes a post and its dependent rows. Every call is its own
// statement; nothing is wrapped in a transaction.
type PostRepository struct {
	gw db.Gateway
}

func NewPostRepository(gw db.Gateway) *PostRepository {
	return &PostRepository{gw: gw}
}

// InsertPost inserts the posts row.
func (r *PostRepository) InsertPost(ctx context.Context, p *models.Post) error {
	_, err := r.gw.ExecContext(ctx, insertPostQuery,
		p.ID, p.UUID, p.Title, p.Slug, p.HTML, p.Lexical,
		p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.PublishedBy, p.PublishedAt,
		p.FeatureImage, p.EmailRecipientFilter, p.Status, p.Visibility,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// UpdateExcerpt sets posts.custom_excerpt.
func (r *PostRepository) UpdateExcerpt(ctx context.Context, postID, excerpt string) error {
	if _, err := r.gw.ExecContext(ctx, updateExcerptQuery, excerpt, postID); err != nil {
		return fmt.Errorf("failed to update excerpt: %w", err)
	}
	return nil
}

func (r *PostRepository) InsertPostAuthor(ctx context.Context, pa models.PostAuthor) error {
	if _, err := r.gw.ExecContext(ctx, insertPostAuthorQuery, pa.ID, pa.PostID, pa.AuthorID, pa.SortOrder); err != nil {
		return fmt.Errorf("failed to insert post author: %w", err)
	}
	return nil
}

func (r *PostRepository) InsertPostTag(ctx context.Context, pt models.PostTag) error {
	if _, err := r.gw.ExecContext(ctx, insertPostTagQuery, pt.ID, pt.PostID, pt.TagID, pt.SortOrder); err != nil {
		return fmt.Errorf("failed to insert post tag: %w", err)
	}
	return nil
}

func (r *PostRepository) InsertMobiledocRevision(ctx context.Context, rev models.MobiledocRevision) error {
	_, err := r.gw.ExecContext(ctx, insertMobiledocRevisionQuery,
		rev.ID, rev.PostID, rev.Mobiledoc, rev.CreatedAtTS, rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert mobiledoc revision: %w", err)
	}
	return nil
}

func (r *PostRepository) InsertPostRevision(ctx context.Context, rev models.PostRevision) error {
	_, err := r.gw.ExecContext(ctx, insertPostRevisionQuery,
		rev.ID, rev.PostID, rev.Lexical, rev.CreatedAtTS, rev.CreatedAt,
		rev.AuthorID, rev.Title, rev.PostStatus, rev.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post revision: %w", err)
	}
	return nil
}

func (r *PostRepository) InsertPostMeta(ctx context.Context, m models.PostMeta) error {
	if _, err := r.gw.ExecContext(ctx, insertPostMetaQuery, m.ID, m.PostID, m.MetaTitle, m.MetaDescription); err != nil {
		return fmt.Errorf("failed to insert post meta: %w", err)
	}
	return nil
}

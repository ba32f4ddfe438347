package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wp-importer/config"
	"wp-importer/dto"
	"wp-importer/models"
)

var hexID = regexp.MustCompile(`^[0-9a-f]{24}$`)

func newTestImporter(opts ImportOptions) *PostImporter {
	p := NewPostImporter(NewAuthorResolver(config.DefaultAuthorID), NewTagResolver(), opts)
	clock := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	p.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return p
}

func defaultOptions() ImportOptions {
	return ImportOptions{FeatureImagePrefix: config.DefaultFeatureImagePrefix}
}

func helloWorld() dto.PostImportRequest {
	return dto.PostImportRequest{
		Title:     "Hello World",
		Slug:      "hello-world",
		HTML:      "<p>Hello</p>",
		Excerpt:   "Hi",
		CreatedAt: "2024-01-15 10:30:00",
		UpdatedAt: "2024-01-16 08:00:00",
		AuthorID:  "42",
		Tags:      "go,databases",
	}
}

func stepNames(report *models.ImportReport) []string {
	names := make([]string, 0, len(report.Steps))
	for _, s := range report.Steps {
		names = append(names, s.Name)
	}
	return names
}

func TestImportHelloWorld(t *testing.T) {
	fdb := newFakeDB()
	fdb.userMap["42"] = "u-ghost-42"
	fdb.tagMap["go"] = "t-go"
	fdb.tagMap["databases"] = "t-db"

	reply, report, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, helloWorld())
	require.NoError(t, err)
	require.NotNil(t, reply)

	assert.Regexp(t, hexID, reply.ID)
	assert.Equal(t, "Hello World", reply.Title)
	assert.Equal(t, "hello-world", reply.Slug)
	assert.Equal(t, "2024-01-15 10:30:00", reply.CreatedAt)
	assert.Equal(t, "2024-01-16 08:00:00", reply.UpdatedAt)
	assert.Equal(t, "u-ghost-42", reply.AuthorID)

	require.Equal(t, 1, fdb.count("posts"))
	post := fdb.row("posts", 0)
	assert.Equal(t, reply.ID, post[0])
	assert.Len(t, post[1], 36)
	assert.Contains(t, post[5], `"Hello"`)
	assert.Equal(t, "u-ghost-42", post[8])
	assert.Equal(t, "u-ghost-42", post[9])
	assert.Equal(t, "2024-01-16 08:00:00", post[10])
	assert.Equal(t, "", post[11])
	assert.Equal(t, []any{"all", "published", "public"}, post[12:15])

	require.Equal(t, 1, fdb.count("posts:update"))
	assert.Equal(t, []any{"Hi", reply.ID}, fdb.row("posts:update", 0))

	require.Equal(t, 1, fdb.count("posts_authors"))
	assert.Equal(t, "u-ghost-42", fdb.row("posts_authors", 0)[2])

	require.Equal(t, 2, fdb.count("posts_tags"))
	assert.Equal(t, "t-go", fdb.row("posts_tags", 0)[2])
	assert.Equal(t, "t-db", fdb.row("posts_tags", 1)[2])

	assert.Equal(t, 1, fdb.count("mobiledoc_revisions"))
	assert.Equal(t, 1, fdb.count("post_revisions"))
	require.Equal(t, 1, fdb.count("posts_meta"))
	assert.Equal(t, "Hello World", fdb.row("posts_meta", 0)[2])
	assert.Equal(t, "Hi", fdb.row("posts_meta", 0)[3])

	assert.Equal(t, models.OutcomeImported, report.Outcome)
	assert.False(t, report.AuthorFallback)
	assert.Empty(t, report.FailedSteps())
	assert.Equal(t, []string{
		"insert_post",
		"update_excerpt",
		"insert_post_author",
		"insert_post_tag:go",
		"insert_post_tag:databases",
		"parse_created_at",
		"insert_mobiledoc_revision",
		"insert_post_revision",
		"insert_post_meta",
	}, stepNames(report))
	assert.True(t, report.CompletedAt.After(report.StartedAt))
}

func TestImportSkipsMissingTags(t *testing.T) {
	fdb := newFakeDB()
	fdb.tagMap["a"] = "t-a"
	fdb.tagMap["c"] = "t-c"

	req := helloWorld()
	req.Tags = "a,b,c"

	reply, report, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, req)
	require.NoError(t, err)
	require.NotNil(t, reply)

	assert.Equal(t, 3, fdb.lookups["tags"])
	require.Equal(t, 2, fdb.count("posts_tags"))
	assert.Equal(t, "t-a", fdb.row("posts_tags", 0)[2])
	assert.Equal(t, "t-c", fdb.row("posts_tags", 1)[2])

	assert.Empty(t, report.FailedSteps())
	assert.Equal(t, []string{"insert_post_tag:b"}, report.SkippedSteps())
	for _, s := range report.Steps {
		if s.Name == "insert_post_tag:b" {
			assert.True(t, s.Skipped)
		}
	}
	assert.Equal(t, models.OutcomeImported, report.Outcome)
}

func TestImportEmptyTagsLooksUpOneEmptyLabel(t *testing.T) {
	fdb := newFakeDB()
	req := helloWorld()
	req.Tags = ""

	_, report, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, req)
	require.NoError(t, err)

	assert.Equal(t, 1, fdb.lookups["tags"])
	assert.Equal(t, 0, fdb.count("posts_tags"))
	assert.Contains(t, stepNames(report), "insert_post_tag:")
}

func TestImportTagLabelsAreNotTrimmed(t *testing.T) {
	fdb := newFakeDB()
	fdb.tagMap["go"] = "t-go"
	req := helloWorld()
	req.Tags = "go, go"

	_, _, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, req)
	require.NoError(t, err)
	assert.Equal(t, 1, fdb.count("posts_tags"))
}

func TestImportRevisionTimestamps(t *testing.T) {
	fdb := newFakeDB()

	_, _, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, helloWorld())
	require.NoError(t, err)

	mobiledoc := fdb.row("mobiledoc_revisions", 0)
	assert.Equal(t, int64(1705314600), mobiledoc[3])
	assert.Equal(t, "2024-01-15 10:30:00", mobiledoc[4])
	assert.Contains(t, mobiledoc[2], `"sections":[[1,"p",[[0,[],0,"<p>Hello</p>"]]]]`)

	revision := fdb.row("post_revisions", 0)
	assert.Equal(t, int64(1705314600), revision[3])
	assert.Equal(t, mobiledoc[2], revision[2])
	assert.Equal(t, []any{config.DefaultAuthorID, "Hello World", "published", "published"}, revision[5:9])
}

func TestImportInvalidTimestamp(t *testing.T) {
	fdb := newFakeDB()
	req := helloWorld()
	req.CreatedAt = "not-a-date"

	reply, report, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
	assert.Nil(t, reply)

	assert.Equal(t, 1, fdb.count("posts"))
	assert.Equal(t, 1, fdb.count("posts_authors"))
	assert.Equal(t, 0, fdb.count("mobiledoc_revisions"))
	assert.Equal(t, 0, fdb.count("post_revisions"))
	assert.Equal(t, 0, fdb.count("posts_meta"))

	require.NotNil(t, report)
	assert.Equal(t, models.OutcomeInvalidTimestamp, report.Outcome)
	assert.Equal(t, "parse_created_at", report.Steps[len(report.Steps)-1].Name)
}

func TestImportPostInsertFailureAborts(t *testing.T) {
	fdb := newFakeDB()
	fdb.failExec["posts"] = errors.New("duplicate entry for slug")

	reply, report, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, helloWorld())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPostInsert)
	assert.Contains(t, err.Error(), "duplicate entry for slug")
	assert.Nil(t, reply)

	for _, table := range []string{"posts:update", "posts_authors", "posts_tags", "mobiledoc_revisions", "post_revisions", "posts_meta"} {
		assert.Equal(t, 0, fdb.count(table), table)
	}
	assert.Equal(t, 0, fdb.lookups["tags"])
	assert.Equal(t, models.OutcomePostInsertFailed, report.Outcome)
	assert.Equal(t, []string{"insert_post"}, stepNames(report))
}

func TestImportBestEffortFailuresStillSucceed(t *testing.T) {
	fdb := newFakeDB()
	fdb.tagMap["go"] = "t-go"
	fdb.tagMap["databases"] = "t-db"
	fdb.failExec["posts:update"] = errors.New("lock wait timeout")
	fdb.failExec["posts_authors"] = errors.New("lock wait timeout")
	fdb.failExec["posts_meta"] = errors.New("lock wait timeout")

	reply, report, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, helloWorld())
	require.NoError(t, err)
	require.NotNil(t, reply)

	assert.Equal(t, 2, fdb.count("posts_tags"))
	assert.Equal(t, 1, fdb.count("mobiledoc_revisions"))
	assert.Equal(t, 1, fdb.count("post_revisions"))
	assert.Equal(t, []string{"update_excerpt", "insert_post_author", "insert_post_meta"}, report.FailedSteps())
	assert.Equal(t, models.OutcomeImported, report.Outcome)
}

func TestImportAuthorFallback(t *testing.T) {
	t.Run("unmapped author", func(t *testing.T) {
		fdb := newFakeDB()

		reply, report, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, helloWorld())
		require.NoError(t, err)
		assert.Equal(t, config.DefaultAuthorID, reply.AuthorID)
		assert.True(t, report.AuthorFallback)
		assert.Equal(t, "42", report.ExternalAuthor)
		assert.Equal(t, config.DefaultAuthorID, fdb.row("posts", 0)[8])
	})

	t.Run("lookup error", func(t *testing.T) {
		fdb := newFakeDB()
		fdb.failLookup = errors.New("connection reset")

		reply, _, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, helloWorld())
		require.NoError(t, err)
		assert.Equal(t, config.DefaultAuthorID, reply.AuthorID)
		assert.Equal(t, 0, fdb.count("posts_tags"))
	})
}

func TestImportFeatureImage(t *testing.T) {
	empty := ""
	image := "/content/images/2024/01/a.png"

	testCases := []struct {
		name     string
		prefix   string
		imageURL *string
		want     string
	}{
		{name: "absent", prefix: "__GHOST_URL__", imageURL: nil, want: ""},
		{name: "empty", prefix: "__GHOST_URL__", imageURL: &empty, want: ""},
		{name: "default prefix", prefix: "__GHOST_URL__", imageURL: &image, want: "__GHOST_URL__/content/images/2024/01/a.png"},
		{name: "custom prefix", prefix: "https://cdn.example.com", imageURL: &image, want: "https://cdn.example.com/content/images/2024/01/a.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fdb := newFakeDB()
			req := helloWorld()
			req.ImageURL = tc.imageURL

			_, _, err := newTestImporter(ImportOptions{FeatureImagePrefix: tc.prefix}).Import(context.Background(), fdb, req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, fdb.row("posts", 0)[11])
		})
	}
}

func TestImportMetaTitle(t *testing.T) {
	explicit := "Custom SEO title"

	testCases := []struct {
		name      string
		title     string
		metaTitle *string
		want      string
	}{
		{name: "short title copied", title: "Ten chars!", want: "Ten chars!"},
		{name: "long title left empty", title: strings.Repeat("a", 40), want: ""},
		{name: "explicit wins", title: strings.Repeat("a", 40), metaTitle: &explicit, want: explicit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fdb := newFakeDB()
			req := helloWorld()
			req.Title = tc.title
			req.MetaTitle = tc.metaTitle

			_, _, err := newTestImporter(defaultOptions()).Import(context.Background(), fdb, req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, fdb.row("posts_meta", 0)[2])
		})
	}
}

func TestMetaTitleCountsRunes(t *testing.T) {
	korean := strings.Repeat("가", 30)
	assert.Equal(t, korean, MetaTitle(korean, nil, 30))
	assert.Equal(t, "", MetaTitle(korean+"나", nil, 30))
	assert.Equal(t, strings.Repeat("a", 30), MetaTitle(strings.Repeat("a", 30), nil, 30))
}

func TestImportCustomTimestampLayout(t *testing.T) {
	fdb := newFakeDB()
	req := helloWorld()
	req.CreatedAt = "2024-01-15T10:30:00Z"

	_, _, err := newTestImporter(ImportOptions{TimestampLayout: time.RFC3339}).Import(context.Background(), fdb, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1705314600), fdb.row("mobiledoc_revisions", 0)[3])
}

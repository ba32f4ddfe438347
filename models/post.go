package models

const (
	PostStatusPublished     = "published"
	PostVisibilityPublic    = "public"
	EmailRecipientFilterAll = "all"
	RevisionReasonPublished = "published"
)

// Post is a row of the Ghost posts table as written by the importer.
// Timestamps are kept in the textual form received from WordPress.
type Post struct {
	ID                   string `db:"id" json:"id"`
	UUID                 string `db:"uuid" json:"uuid"`
	Title                string `db:"title" json:"title"`
	Slug                 string `db:"slug" json:"slug"`
	HTML                 string `db:"html" json:"html"`
	Lexical              string `db:"lexical" json:"lexical"`
	CreatedAt            string `db:"created_at" json:"created_at"`
	UpdatedAt            string `db:"updated_at" json:"updated_at"`
	CreatedBy            string `db:"created_by" json:"created_by"`
	PublishedBy          string `db:"published_by" json:"published_by"`
	PublishedAt          string `db:"published_at" json:"published_at"`
	FeatureImage         string `db:"feature_image" json:"feature_image"`
	EmailRecipientFilter string `db:"email_recipient_filter" json:"email_recipient_filter"`
	Status               string `db:"status" json:"status"`
	Visibility           string `db:"visibility" json:"visibility"`
}

// PostAuthor links a post to one of its authors.
// Table: posts_authors
type PostAuthor struct {
	ID        string `db:"id" json:"id"`
	PostID    string `db:"post_id" json:"post_id"`
	AuthorID  string `db:"author_id" json:"author_id"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// PostTag links a post to a tag.
// Table: posts_tags
type PostTag struct {
	ID        string `db:"id" json:"id"`
	PostID    string `db:"post_id" json:"post_id"`
	TagID     string `db:"tag_id" json:"tag_id"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// PostMeta holds the SEO fields of a post.
// Table: posts_meta
type PostMeta struct {
	ID              string `db:"id" json:"id"`
	PostID          string `db:"post_id" json:"post_id"`
	MetaTitle       string `db:"meta_title" json:"meta_title"`
	MetaDescription string `db:"meta_description" json:"meta_description"`
}

// MobiledocRevision is the archived legacy document of a post.
// Table: mobiledoc_revisions
type MobiledocRevision struct {
	ID          string `db:"id" json:"id"`
	PostID      string `db:"post_id" json:"post_id"`
	Mobiledoc   string `db:"mobiledoc" json:"mobiledoc"`
	CreatedAtTS int64  `db:"created_at_ts" json:"created_at_ts"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}

// PostRevision is a row of post history.
// Table: post_revisions
type PostRevision struct {
	ID          string `db:"id" json:"id"`
	PostID      string `db:"post_id" json:"post_id"`
	Lexical     string `db:"lexical" json:"lexical"`
	CreatedAtTS int64  `db:"created_at_ts" json:"created_at_ts"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	AuthorID    string `db:"author_id" json:"author_id"`
	Title       string `db:"title" json:"title"`
	PostStatus  string `db:"post_status" json:"post_status"`
	Reason      string `db:"reason" json:"reason"`
}

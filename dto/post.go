package dto

// PostImportRequest is one WordPress post to import.
// Tags is a comma-joined list of tag slugs.
type PostImportRequest struct {
	Title     string      `json:"title"`
	Slug      string      `json:"slug"`
	HTML      string      `json:"html"`
	Excerpt   string      `json:"excerpt"`
	CreatedAt string      `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string      `json:"updated_at" example:"2024-01-15 10:30:00"`
	AuthorID  ExternalRef `json:"author_id" swaggertype:"string"`
	ImageURL  *string     `json:"image_url,omitempty"`
	MetaTitle *string     `json:"meta_title,omitempty"`
	Tags      string      `json:"tags" example:"go,databases"`
}

// PostReply is returned once the post row exists, whatever happened to its
// dependent rows.
type PostReply struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	AuthorID  string `json:"author_id"`
}

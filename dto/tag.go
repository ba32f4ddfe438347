package dto

type TagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TagReply struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// HealthReply mirrors the body of /api/healthcheck.
type HealthReply struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

package dto

// AuthorImportRequest is a WordPress user to recreate as a Ghost staff user.
type AuthorImportRequest struct {
	ID        ExternalRef `json:"id" swaggertype:"string"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Login     string      `json:"login"`
	Password  string      `json:"password"`
	CreatedAt string      `json:"created_at"`
}

type AuthorReply struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

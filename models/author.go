package models

// SystemUserID is the Ghost owner account recorded as created_by for imported rows.
const SystemUserID = "1"

// User is a Ghost staff user created from a WordPress author.
// Table: users
type User struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Slug      string `db:"slug" json:"slug"`
	Password  string `db:"password" json:"-"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
	CreatedBy string `db:"created_by" json:"created_by"`
}

// UserMigration maps a WordPress author id to the Ghost user created for it.
// Table: users_migration (at most one user_id per external_id)
type UserMigration struct {
	ID         string `db:"id" json:"id"`
	UserID     string `db:"user_id" json:"user_id"`
	ExternalID string `db:"external_id" json:"external_id"`
}

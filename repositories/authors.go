package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wp-importer/db"
	"wp-importer/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const (
	findUserByExternalIDQuery = `SELECT user_id FROM users_migration WHERE external_id = ?`
	insertUserQuery           = `INSERT INTO users (id, name, email, slug, password, created_at, updated_at, created_by) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	insertUserMigrationQuery  = `INSERT INTO users_migration (id, user_id, external_id) VALUES (?, ?, ?)`
)

type AuthorRepository struct {
	gw db.Gateway
}

func NewAuthorRepository(gw db.Gateway) *AuthorRepository {
	return &AuthorRepository{gw: gw}
}

// FindUserIDByExternalID returns the Ghost user id mapped to a WordPress
// author id, or ErrNotFound.
func (r *AuthorRepository) FindUserIDByExternalID(ctx context.Context, externalID string) (string, error) {
	var userID string
	err := r.gw.GetContext(ctx, &userID, findUserByExternalIDQuery, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to find user mapping: %w", err)
	}
	return userID, nil
}

func (r *AuthorRepository) InsertUser(ctx context.Context, u *models.User) error {
	_, err := r.gw.ExecContext(ctx, insertUserQuery,
		u.ID, u.Name, u.Email, u.Slug, u.Password, u.CreatedAt, u.UpdatedAt, u.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *AuthorRepository) InsertMigration(ctx context.Context, m models.UserMigration) error {
	if _, err := r.gw.ExecContext(ctx, insertUserMigrationQuery, m.ID, m.UserID, m.ExternalID); err != nil {
		return fmt.Errorf("failed to insert user migration: %w", err)
	}
	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wp-importer/db"
	"wp-importer/models"
)

const (
	findTagIDBySlugQuery = `SELECT id FROM tags WHERE slug = ?`
	insertTagQuery       = `INSERT INTO tags (id, name, slug, created_at, updated_at, created_by) VALUES (?, ?, ?, NOW(), NOW(), ?)`
)

type TagRepository struct {
	gw db.Gateway
}

func NewTagRepository(gw db.Gateway) *TagRepository {
	return &TagRepository{gw: gw}
}

// FindIDBySlug returns the id of the tag with the given slug, or ErrNotFound.
func (r *TagRepository) FindIDBySlug(ctx context.Context, slug string) (string, error) {
	var id string
	if err := r.gw.GetContext(ctx, &id, findTagIDBySlugQuery, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to find tag: %w", err)
	}
	return id, nil
}

func (r *TagRepository) Insert(ctx context.Context, t models.Tag) error {
	if _, err := r.gw.ExecContext(ctx, insertTagQuery, t.ID, t.Name, t.Slug, models.SystemUserID); err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

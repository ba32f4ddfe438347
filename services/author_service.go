package services

import (
	"context"
	"fmt"

	"wp-importer/config"
	"wp-importer/db"
	"wp-importer/dto"
	"wp-importer/idgen"
	"wp-importer/models"
	"wp-importer/repositories"
)

// AuthorService recreates WordPress authors as Ghost users and records the
// users_migration mapping the post pipeline reads.
type AuthorService struct {
	pool  db.Acquirer
	newID func() string
}

// CreateAuthor writes the users row and then its users_migration row.
// There is no transaction; a failed mapping insert leaves the user in place.
func (s *AuthorService) CreateAuthor(ctx context.Context, req dto.AuthorImportRequest) (*dto.AuthorReply, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	defer conn.Close()

	repo := repositories.NewAuthorRepository(conn)
	user := &models.User{
		ID:        s.newID(),
		Name:      req.Name,
		Email:     req.Email,
		Slug:      req.Login,
		Password:  req.Password,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.CreatedAt,
		CreatedBy: models.SystemUserID,
	}
	if err := repo.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	mapping := models.UserMigration{
		ID:         s.newID(),
		UserID:     user.ID,
		ExternalID: req.ID.String(),
	}
	if err := repo.InsertMigration(ctx, mapping); err != nil {
		return nil, err
	}

	config.InfoWithFields("author imported", config.Fields{
		"user_id":            user.ID,
		"external_author_id": mapping.ExternalID,
	})
	return &dto.AuthorReply{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func NewAuthorService(pool db.Acquirer) *AuthorService {
	return &AuthorService{pool: pool, newID: idgen.New}
}

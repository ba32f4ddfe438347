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

// TagService creates the tags that posts are later associated with by slug.
type TagService struct {
	pool  db.Acquirer
	newID func() string
}

func (s *TagService) CreateTag(ctx context.Context, req dto.TagRequest) (*dto.TagReply, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	defer conn.Close()

	tag := models.Tag{ID: s.newID(), Name: req.Name, Slug: req.Slug}
	if err := repositories.NewTagRepository(conn).Insert(ctx, tag); err != nil {
		return nil, err
	}

	config.InfoWithFields("tag created", config.Fields{"tag_id": tag.ID, "slug": tag.Slug})
	return &dto.TagReply{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}, nil
}

func NewTagService(pool db.Acquirer) *TagService {
	return &TagService{pool: pool, newID: idgen.New}
}

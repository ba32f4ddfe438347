package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"wp-importer/dto"
	"wp-importer/services"
)

type PostImporter interface {
	ImportPost(ctx context.Context, req dto.PostImportRequest) (*dto.PostReply, error)
}

type AuthorCreator interface {
	CreateAuthor(ctx context.Context, req dto.AuthorImportRequest) (*dto.AuthorReply, error)
}

type TagCreator interface {
	CreateTag(ctx context.Context, req dto.TagRequest) (*dto.TagReply, error)
}

type HealthChecker interface {
	Check(ctx context.Context) error
}

// ImportPostHandler godoc
// @Summary      Import a WordPress post
// @Description  Writes the post, its author and tag links, revisions and meta into Ghost.
// @Description  Only a failed post insert or an unparseable created_at fail the request.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post  body      dto.PostImportRequest  true  "WordPress post"
// @Success      201   {object}  dto.PostReply
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /posts [post]
func ImportPostHandler(svc PostImporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.PostImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		reply, err := svc.ImportPost(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			if errors.Is(err, services.ErrInvalidTimestamp) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}
		c.JSON(http.StatusCreated, reply)
	}
}

// CreateAuthorHandler godoc
// @Summary      Import a WordPress author
// @Description  Creates a Ghost user and maps it to the WordPress author id.
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        author  body      dto.AuthorImportRequest  true  "WordPress author"
// @Success      201     {object}  dto.AuthorReply
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /authors [post]
func CreateAuthorHandler(svc AuthorCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.AuthorImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		reply, err := svc.CreateAuthor(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create user: %v", err)})
			return
		}
		c.JSON(http.StatusCreated, reply)
	}
}

// CreateTagHandler godoc
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tag  body      dto.TagRequest  true  "Tag"
// @Success      201  {object}  dto.TagReply
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tags [post]
func CreateTagHandler(svc TagCreator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.TagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		reply, err := svc.CreateTag(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create tag: %v", err)})
			return
		}
		c.JSON(http.StatusCreated, reply)
	}
}

// HealthCheckHandler godoc
// @Summary      Database health check
// @Tags         health
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.HealthReply
// @Failure      500  {object}  dto.HealthReply
// @Router       /healthcheck [get]
func HealthCheckHandler(svc HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Check(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, dto.HealthReply{
				Status:  "fail",
				Message: "Database connection failed: " + err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, dto.HealthReply{Status: "ok", Message: "Database connection is healthy"})
	}
}

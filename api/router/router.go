package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wp-importer/api/handlers"
	"wp-importer/api/middleware"
	_ "wp-importer/docs"
)

// Services are the handlers' dependencies, built once in main.
type Services struct {
	Posts   handlers.PostImporter
	Authors handlers.AuthorCreator
	Tags    handlers.TagCreator
	Health  handlers.HealthChecker
}

func New(svcs Services, apiToken string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.ErrorLogging())

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api", middleware.BearerToken(apiToken))
	{
		api.POST("/posts", handlers.ImportPostHandler(svcs.Posts))
		api.POST("/authors", handlers.CreateAuthorHandler(svcs.Authors))
		api.POST("/tags", handlers.CreateTagHandler(svcs.Tags))
		api.GET("/healthcheck", handlers.HealthCheckHandler(svcs.Health))
	}

	return r
}

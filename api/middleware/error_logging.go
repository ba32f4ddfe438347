package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wp-importer/config"
	"wp-importer/trace"
)

// ErrorLogging 은 5xx 와 405 응답을 error 레벨로 남긴다.
func ErrorLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusInternalServerError && status != http.StatusMethodNotAllowed {
			return
		}

		fields := config.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"reason":     http.StatusText(status),
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		config.ErrorWithFields("request failed", fields)
	}
}

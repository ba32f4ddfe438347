package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wp-importer/api/auth"
	"wp-importer/config"
)

// BearerToken 은 Authorization 헤더의 토큰이 API_TOKEN 과 일치하는지 확인한다.
// 서버에 토큰이 설정되지 않았으면 모든 요청을 500 으로 거절한다.
func BearerToken(apiToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiToken == "" {
			config.Logger.Error("API_TOKEN is not configured, rejecting request")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": auth.ErrNotConfigured.Error()})
			return
		}

		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		if err := auth.VerifyToken(token, apiToken); err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				config.Logger.Warnf("rejected request with invalid token path=%s", c.Request.URL.Path)
			}
			auth.AbortWithUnauthorized(c, err)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wp-importer/config"
	"wp-importer/trace"
)

const maxBodyLog = 512

// RequestTrace는 모든 inbound HTTP 요청에 Request ID를 보장하고,
// 이를 컨텍스트/헤더에 저장한 뒤 완료 로그에 포함시킨다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(trace.HeaderRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		c.Request = req.WithContext(trace.WithRequestID(req.Context(), requestID))
		req = c.Request
		c.Writer.Header().Set(trace.HeaderRequestID, requestID)

		// 요청 바디 앞부분만 로깅한다. 포스트 HTML 은 매우 클 수 있다.
		var bodySnippet string
		if req.Body != nil && req.ContentLength != 0 && req.Method == http.MethodPost {
			if bodyBytes, err := io.ReadAll(req.Body); err == nil {
				if len(bodyBytes) > maxBodyLog {
					bodySnippet = string(bodyBytes[:maxBodyLog])
				} else {
					bodySnippet = string(bodyBytes)
				}
				// gin 핸들러에서 다시 읽을 수 있도록 Body 를 복원한다.
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
		}

		c.Next()

		fields := config.Fields{
			"method":      req.Method,
			"path":        req.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  requestID,
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		config.InfoWithFields("completed request", fields)
	}
}

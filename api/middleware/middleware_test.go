package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"wp-importer/trace"
)

func newTestEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(handlers...)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.POST("/echo", func(c *gin.Context) {
		body, _ := c.GetRawData()
		c.String(http.StatusOK, "%s|%s", body, trace.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	return r
}

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{name: "valid token", configured: "secret", header: "Bearer secret", wantStatus: http.StatusOK},
		{name: "missing header", configured: "secret", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", configured: "secret", header: "Token secret", wantStatus: http.StatusUnauthorized},
		{name: "lowercase scheme", configured: "secret", header: "bearer secret", wantStatus: http.StatusUnauthorized},
		{name: "padded token", configured: "secret", header: "Bearer  secret", wantStatus: http.StatusUnauthorized},
		{name: "token not configured", configured: "", header: "Bearer secret", wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestEngine(BearerToken(tc.configured))

			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRequestTraceGeneratesRequestID(t *testing.T) {
	r := newTestEngine(RequestTrace())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"title":"x"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(trace.HeaderRequestID)
	assert.Len(t, id, 32)
	assert.Equal(t, `{"title":"x"}|`+id, w.Body.String())
}

func TestRequestTraceKeepsIncomingRequestID(t *testing.T) {
	r := newTestEngine(RequestTrace())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(trace.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(trace.HeaderRequestID))
}

func TestErrorLoggingPassesResponsesThrough(t *testing.T) {
	r := newTestEngine(ErrorLogging())

	testCases := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{method: http.MethodGet, path: "/ok", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/fail", wantStatus: http.StatusInternalServerError},
		{method: http.MethodDelete, path: "/ok", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.wantStatus, w.Code, tc.method+" "+tc.path)
	}
}

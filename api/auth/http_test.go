package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name        string
		headerValue string
		wantToken   string
		wantErr     error
	}{
		{
			name:    "missing header",
			wantErr: ErrMissingHeader,
		},
		{
			name:        "invalid scheme",
			headerValue: "Basic abc",
			wantErr:     ErrInvalidFormat,
		},
		{
			name:        "missing token part",
			headerValue: "Bearer",
			wantErr:     ErrInvalidFormat,
		},
		{
			name:        "empty token",
			headerValue: "Bearer ",
			wantErr:     ErrEmptyToken,
		},
		{
			name:        "lowercase scheme",
			headerValue: "bearer token-123",
			wantErr:     ErrInvalidFormat,
		},
		{
			name:        "padded token is kept as sent",
			headerValue: "Bearer  token-123 ",
			wantToken:   " token-123 ",
		},
		{
			name:        "valid bearer token",
			headerValue: "Bearer token-123",
			wantToken:   "token-123",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ginCtx, _ := newTestGinContext(testCase.headerValue)

			token, err := ExtractBearerToken(ginCtx)
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Equal(t, testCase.wantToken, token)
		})
	}
}

func TestVerifyToken(t *testing.T) {
	assert.NoError(t, VerifyToken("secret", "secret"))
	assert.ErrorIs(t, VerifyToken("Secret", "secret"), ErrInvalidToken)
	assert.ErrorIs(t, VerifyToken("secret-longer", "secret"), ErrInvalidToken)
	assert.ErrorIs(t, VerifyToken("anything", ""), ErrNotConfigured)
}

func TestAbortWithUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ginCtx, recorder := newTestGinContext("")
	AbortWithUnauthorized(ginCtx, ErrInvalidFormat)

	assert.True(t, ginCtx.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, ErrInvalidFormat.Error(), body["error"])
}

func newTestGinContext(authorizationHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorizationHeader != "" {
		request.Header.Set("Authorization", authorizationHeader)
	}
	ginCtx.Request = request

	return ginCtx, recorder
}

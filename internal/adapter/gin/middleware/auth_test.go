package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-management-service/pkg/token"
)

func setupAuthRouter(t *testing.T, verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(verifier, zaptest.NewLogger(t)))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetInt64(ContextUserIDKey),
			"email":  c.GetString(ContextEmailKey),
		})
	})
	return r
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	tok, err := tokens.Issue(42, "john@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
	assert.Contains(t, w.Body.String(), "john@example.com")
}

func TestAuth_MissingHeader(t *testing.T) {
	r := setupAuthRouter(t, token.NewManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization header required")
}

func TestAuth_MalformedHeader(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tokens)

	tok, err := tokens.Issue(42, "john@example.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", tok},
		{"wrong scheme", "Basic " + tok},
		{"lowercase scheme", "bearer " + tok},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "invalid authorization header format")
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r := setupAuthRouter(t, token.NewManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens := token.NewManager("test-secret", -time.Minute)
	r := setupAuthRouter(t, tokens)

	tok, err := tokens.Issue(42, "john@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	issuer := token.NewManager("other-secret", time.Hour)
	r := setupAuthRouter(t, token.NewManager("test-secret", time.Hour))

	tok, err := issuer.Issue(42, "john@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/pkg/auth"
)

func newGuardedRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:     "test-secret",
		AdminTokenExp: time.Hour,
		TokenIssuer:   "test",
	})

	router := gin.New()
	guarded := router.Group("/admin")
	guarded.Use(NewAuthMiddleware(jwtService).AdminAuth())
	guarded.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
	})
	return router, jwtService
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	router, jwtService := newGuardedRouter(t)

	token, _, err := jwtService.GenerateAdminToken("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin")
}

func TestAdminAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	router, _ := newGuardedRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"no bearer prefix", "token-without-prefix"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminAuthRejectsForeignSignature(t *testing.T) {
	router, _ := newGuardedRouter(t)

	other := auth.NewJWTService(auth.JWTConfig{
		SecretKey:     "different-secret",
		AdminTokenExp: time.Hour,
		TokenIssuer:   "test",
	})
	token, _, err := other.GenerateAdminToken("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

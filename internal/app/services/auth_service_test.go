package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
	"github.com/darulhuda/ppdb-portal/internal/pkg/auth"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:     "test-secret",
		AdminTokenExp: 12 * time.Hour,
		TokenIssuer:   "test",
	})
	service, err := NewAuthService("admin", "admin123", time.Millisecond, jwtService, zerolog.Nop())
	require.NoError(t, err)
	return service
}

func TestLoginIssuesTokenForValidCredentials(t *testing.T) {
	service := newTestAuthService(t)

	resp, err := service.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int((12 * time.Hour).Seconds()), resp.ExpiresIn)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := newTestAuthService(t)

	tests := []dto.LoginRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "admin123"},
		{Username: "", Password: ""},
	}
	for _, req := range tests {
		_, err := service.Login(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
}

func TestLoginHonoursContextCancellation(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AdminTokenExp: time.Hour, TokenIssuer: "test"})
	service, err := NewAuthService("admin", "admin123", time.Minute, jwtService, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = service.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	assert.ErrorIs(t, err, context.Canceled)
}

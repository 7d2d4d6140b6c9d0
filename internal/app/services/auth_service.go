package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/darulhuda/ppdb-portal/internal/app/models/dto"
	"github.com/darulhuda/ppdb-portal/internal/pkg/apperrors"
	"github.com/darulhuda/ppdb-portal/internal/pkg/auth"
)

// AuthService handles the single-admin dashboard login
type AuthService struct {
	username     string
	passwordHash string
	loginDelay   time.Duration
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService. The admin password arrives in
// plain text from configuration and is hashed once here, so the comparison
// path never touches the plain value again.
func NewAuthService(username, password string, loginDelay time.Duration, jwtService *auth.JWTService, logger zerolog.Logger) (*AuthService, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		username:     username,
		passwordHash: hash,
		loginDelay:   loginDelay,
		jwtService:   jwtService,
		logger:       logger,
	}, nil
}

// Login verifies the admin credentials and issues a dashboard token. Both
// the success and the failure path pay the configured delay, so response
// timing does not reveal which part of the credential pair was wrong.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	select {
	case <-time.After(s.loginDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	usernameOK := strings.TrimSpace(req.Username) == s.username
	passwordOK := auth.CheckPassword(s.passwordHash, req.Password)
	if !usernameOK || !passwordOK {
		s.logger.Warn().Str("username", req.Username).Msg("Admin login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAdminToken(s.username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue admin token")
		return nil, err
	}

	s.logger.Info().Str("username", s.username).Msg("Admin login succeeded")
	return &dto.LoginResponse{Token: token, ExpiresIn: expiresIn}, nil
}

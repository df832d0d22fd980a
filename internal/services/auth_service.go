package services

import (
	"context"
	"errors"

	"github.com/bouvin87/BarcodeBuddy/internal/auth"
	"github.com/bouvin87/BarcodeBuddy/internal/cache"
	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/bouvin87/BarcodeBuddy/internal/metrics"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/repositories"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired or logged out")
	ErrLoginNotConfigured = errors.New("login is not configured")
)

// AuthService handles the single shared warehouse login
type AuthService struct {
	cfg        *config.Config
	jwtManager *auth.JWTManager
	sessions   *repositories.AuthSessionRepository
	log        *logrus.Entry
}

func NewAuthService(cfg *config.Config, jwtManager *auth.JWTManager, sessions *repositories.AuthSessionRepository) *AuthService {
	return &AuthService{
		cfg:        cfg,
		jwtManager: jwtManager,
		sessions:   sessions,
		log:        config.GetLoggerEntry("auth"),
	}
}

// Login checks the shared credentials and opens a new session
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.checkCredentials(ctx, req.Username, req.Password); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		s.log.WithField("username", req.Username).Warn("[Auth] login rejected")
		return nil, err
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := s.jwtManager.GenerateToken(req.Username, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, models.AuthSession{ID: sessionID, Username: req.Username, ExpiresAt: expiresAt}); err != nil {
		return nil, err
	}

	s.log.WithField("username", req.Username).Info("[Auth] login")
	return &models.LoginResponse{SessionID: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) checkCredentials(ctx context.Context, username, password string) error {
	if s.cfg.Auth.Password == "" && s.cfg.Auth.PasswordHash == "" {
		return ErrLoginNotConfigured
	}
	if !auth.ConstantTimeEqual(username, s.cfg.Auth.Username) {
		return ErrInvalidCredentials
	}

	if s.cfg.Auth.PasswordHash == "" {
		if !auth.ConstantTimeEqual(password, s.cfg.Auth.Password) {
			return ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("success").Inc()
		return nil
	}

	if _, ok := cache.GetCachedAuth(ctx, username, password); ok {
		metrics.LoginAttempts.WithLabelValues("cached").Inc()
		return nil
	}
	if !auth.VerifyPassword(s.cfg.Auth.PasswordHash, password) {
		return ErrInvalidCredentials
	}
	cache.CacheAuth(ctx, username, password)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return nil
}

// Logout ends the session behind a token
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.WithField("session_id", sessionID).Info("[Auth] logout")
	return nil
}

// Status reports the user behind a live session
func (s *AuthService) Status(ctx context.Context, sessionID string) (*models.AuthStatusResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, ErrSessionExpired
	}
	return &models.AuthStatusResponse{Authenticated: true, Username: session.Username}, nil
}

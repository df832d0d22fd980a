package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bouvin87/BarcodeBuddy/internal/auth"
	"github.com/bouvin87/BarcodeBuddy/internal/config"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/repositories"
)

func newTestAuthService(t *testing.T, hashed bool) *AuthService {
	cfg := &config.Config{}
	cfg.Auth.Username = "lager"
	cfg.Auth.SessionHours = 1
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "barcodebuddy"
	if hashed {
		hash, err := auth.HashPassword("hemligt")
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		cfg.Auth.PasswordHash = hash
	} else {
		cfg.Auth.Password = "hemligt"
	}
	return NewAuthService(cfg, auth.NewJWTManager(cfg), repositories.NewAuthSessionRepository())
}

func TestAuthService_LoginLogout(t *testing.T) {
	for _, hashed := range []bool{false, true} {
		svc := newTestAuthService(t, hashed)
		ctx := context.Background()

		resp, err := svc.Login(ctx, &models.LoginRequest{Username: "lager", Password: "hemligt"})
		if err != nil {
			t.Fatalf("Login (hashed=%v): %v", hashed, err)
		}
		claims, err := svc.jwtManager.ValidateToken(resp.SessionID)
		if err != nil {
			t.Fatalf("issued token invalid: %v", err)
		}

		status, err := svc.Status(ctx, claims.ID)
		if err != nil || !status.Authenticated || status.Username != "lager" {
			t.Fatalf("Status = %+v, %v", status, err)
		}

		if err := svc.Logout(ctx, claims.ID); err != nil {
			t.Fatalf("Logout: %v", err)
		}
		if _, err := svc.Status(ctx, claims.ID); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired after logout, got %v", err)
		}
	}
}

func TestAuthService_RejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t, true)
	ctx := context.Background()

	cases := []models.LoginRequest{
		{Username: "lager", Password: "fel"},
		{Username: "admin", Password: "hemligt"},
	}
	for _, req := range cases {
		if _, err := svc.Login(ctx, &req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login(%+v) expected ErrInvalidCredentials, got %v", req, err)
		}
	}
}

func TestAuthService_NotConfigured(t *testing.T) {
	svc := newTestAuthService(t, false)
	svc.cfg.Auth.Password = ""
	if _, err := svc.Login(context.Background(), &models.LoginRequest{Username: "lager", Password: ""}); !errors.Is(err, ErrLoginNotConfigured) {
		t.Fatalf("expected ErrLoginNotConfigured, got %v", err)
	}
}

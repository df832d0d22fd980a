package auth

import (
	"testing"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "barcodebuddy"
	cfg.Auth.SessionHours = 2
	return cfg
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, expires, err := m.GenerateToken("lager", "sess-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if d := time.Until(expires); d < time.Hour || d > 3*time.Hour {
		t.Fatalf("unexpected expiry %v", expires)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "lager" || claims.ID != "sess-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestJWTManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	m := NewJWTManager(testConfig())
	token, _, _ := m.GenerateToken("lager", "sess-1")

	other := testConfig()
	other.JWT.Secret = "another-secret"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}

	late := NewJWTManager(testConfig())
	late.now = func() time.Time { return time.Now().Add(5 * time.Hour) }
	if _, err := late.ValidateToken(token); err == nil {
		t.Fatalf("expired token must be rejected")
	}

	if _, err := m.ValidateToken("not-a-token"); err == nil {
		t.Fatalf("garbage must be rejected")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hemligt")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "hemligt") || VerifyPassword(hash, "fel") {
		t.Fatalf("VerifyPassword mismatch")
	}
	if !ConstantTimeEqual("abc", "abc") || ConstantTimeEqual("abc", "abd") {
		t.Fatalf("ConstantTimeEqual mismatch")
	}
}

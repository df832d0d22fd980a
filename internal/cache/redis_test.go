package cache

import (
	"context"
	"strings"
	"testing"
)

func TestHashCredentials(t *testing.T) {
	a := hashCredentials("admin", "secret")
	if a != hashCredentials("admin", "secret") {
		t.Fatalf("hash must be deterministic")
	}
	if a == hashCredentials("admin", "Secret") {
		t.Fatalf("different passwords must give different keys")
	}
	if !strings.HasPrefix(a, "auth:") || len(a) != len("auth:")+32 {
		t.Fatalf("unexpected key format %q", a)
	}
	if strings.Contains(a, "secret") {
		t.Fatalf("key leaks the password: %q", a)
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	client = nil

	CacheAuth(ctx, "admin", "secret")
	if _, ok := GetCachedAuth(ctx, "admin", "secret"); ok {
		t.Fatalf("disabled cache must never hit")
	}
	InvalidateAuth(ctx, "admin", "secret")
	if IsEnabled() || IsHealthy(ctx) {
		t.Fatalf("disabled cache reports enabled")
	}
	if err := Close(); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}

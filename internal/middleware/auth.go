package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/bouvin87/BarcodeBuddy/internal/auth"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/pkg/utils"
)

type contextKey string

const UsernameKey contextKey = "username"
const SessionIDKey contextKey = "session_id"

// SessionStore is the part of the auth session repository the middleware needs
type SessionStore interface {
	Get(ctx context.Context, id string) (models.AuthSession, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	sessions   SessionStore
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, sessions SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		sessions:   sessions,
	}
}

// Authenticate validates the bearer token and checks that its login has not
// been ended by logout
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		session, err := m.sessions.Get(r.Context(), claims.ID)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, session.Username)
		ctx = context.WithValue(ctx, SessionIDKey, session.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUsernameFromContext extracts the logged-in username from request context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetSessionIDFromContext extracts the auth session id from request context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok
}

package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bouvin87/BarcodeBuddy/internal/models"
)

var ErrAuthSessionNotFound = errors.New("auth session not found or expired")

// AuthSessionRepository tracks logged-in clients so tokens can be revoked on
// logout. Entries are dropped lazily once expired.
type AuthSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]models.AuthSession
	now      func() time.Time
}

func NewAuthSessionRepository() *AuthSessionRepository {
	return &AuthSessionRepository{
		sessions: make(map[string]models.AuthSession),
		now:      time.Now,
	}
}

// Create registers a session
func (r *AuthSessionRepository) Create(ctx context.Context, session models.AuthSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

// Get returns a live session; expired ones are removed and reported as missing
func (r *AuthSessionRepository) Get(ctx context.Context, id string) (models.AuthSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return models.AuthSession{}, ErrAuthSessionNotFound
	}
	if session.ExpiresAt.Before(r.now()) {
		delete(r.sessions, id)
		return models.AuthSession{}, ErrAuthSessionNotFound
	}
	return session, nil
}

// Delete removes a session (logout)
func (r *AuthSessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// PurgeExpired removes all expired sessions and returns how many were dropped
func (r *AuthSessionRepository) PurgeExpired(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	purged := 0
	for id, s := range r.sessions {
		if s.ExpiresAt.Before(now) {
			delete(r.sessions, id)
			purged++
		}
	}
	return purged
}

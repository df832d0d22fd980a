package models

import "time"

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token the client sends on every request
type LoginResponse struct {
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthStatusResponse is returned by GET /api/auth/status
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// AuthSession is a logged-in client; removed on logout or expiry
type AuthSession struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

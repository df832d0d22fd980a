package models

import (
	"errors"
	"fmt"
)

// EmailStatus tracks delivery of a scan session's report
type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// ErrInvalidStatusTransition is returned for moves the lifecycle does not allow
var ErrInvalidStatusTransition = errors.New("invalid email status transition")

// Valid reports whether s is one of the known statuses
func (s EmailStatus) Valid() bool {
	switch s {
	case EmailPending, EmailSent, EmailFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// pending -> sent|failed, failed -> sent|failed (retry). Nothing returns to
// pending and a sent report stays sent.
func (s EmailStatus) CanTransitionTo(next EmailStatus) bool {
	switch s {
	case EmailPending:
		return next == EmailPending || next == EmailSent || next == EmailFailed
	case EmailFailed:
		return next == EmailSent || next == EmailFailed
	case EmailSent:
		return next == EmailSent
	}
	return false
}

// Transition validates a move and returns next, or a wrapped ErrInvalidStatusTransition
func (s EmailStatus) Transition(next EmailStatus) (EmailStatus, error) {
	if !next.Valid() || !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, s, next)
	}
	return next, nil
}

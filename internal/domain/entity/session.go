// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionType distinguishes anonymous guest sessions from registered users.
type SessionType string

const (
	SessionTypeGuest SessionType = "guest"
	SessionTypeUser  SessionType = "user"
)

// IsValid reports whether the session type is known.
func (t SessionType) IsValid() bool {
	return t == SessionTypeGuest || t == SessionTypeUser
}

// Session represents the caller identity derived from a bearer token.
type Session struct {
	ID        uuid.UUID
	Type      SessionType
	UserID    string
	Email     string
	ExpiresAt time.Time
	// Token is the raw bearer token, forwarded to the upstream API.
	Token string
}

// NewGuestSession creates a new anonymous session.
func NewGuestSession(ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		Type:      SessionTypeGuest,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
}

// IsGuest reports whether the session is anonymous.
func (s *Session) IsGuest() bool {
	return s.Type == SessionTypeGuest
}

// OwnerID identifies whose preferences the session reads and writes.
func (s *Session) OwnerID() string {
	if s.Type == SessionTypeUser && s.UserID != "" {
		return s.UserID
	}
	return s.ID.String()
}

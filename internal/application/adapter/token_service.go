// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/budget-tracker/insights/internal/domain/entity"
)

// SessionTokenService defines the interface for session token operations.
type SessionTokenService interface {
	// IssueGuestToken signs a token for a new guest session.
	IssueGuestToken(ctx context.Context, session *entity.Session) (string, error)

	// ValidateToken validates a bearer token and returns the session it describes.
	ValidateToken(ctx context.Context, token string) (*entity.Session, error)
}

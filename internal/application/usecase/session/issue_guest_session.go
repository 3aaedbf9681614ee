// Package session contains session-related use cases.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

// IssueGuestSessionOutput represents a newly issued guest session.
type IssueGuestSessionOutput struct {
	SessionID uuid.UUID
	Type      entity.SessionType
	Token     string
	ExpiresAt time.Time
}

// IssueGuestSessionUseCase creates anonymous sessions for users who have not signed in.
type IssueGuestSessionUseCase struct {
	tokenService adapter.SessionTokenService
	ttl          time.Duration
}

// NewIssueGuestSessionUseCase creates a new IssueGuestSessionUseCase instance.
func NewIssueGuestSessionUseCase(tokenService adapter.SessionTokenService, ttl time.Duration) *IssueGuestSessionUseCase {
	return &IssueGuestSessionUseCase{
		tokenService: tokenService,
		ttl:          ttl,
	}
}

// Execute issues a signed token for a fresh guest session.
func (uc *IssueGuestSessionUseCase) Execute(ctx context.Context) (*IssueGuestSessionOutput, error) {
	session := entity.NewGuestSession(uc.ttl)

	token, err := uc.tokenService.IssueGuestToken(ctx, session)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to issue guest token", "error", err)
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeSessionIssueFailed,
			"failed to issue guest session",
			err,
		)
	}

	slog.InfoContext(ctx, "Guest session issued", "session_id", session.ID.String())

	return &IssueGuestSessionOutput{
		SessionID: session.ID,
		Type:      session.Type,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

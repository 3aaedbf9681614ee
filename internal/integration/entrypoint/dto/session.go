package dto

import (
	"github.com/budget-tracker/insights/internal/application/usecase/session"
)

// GuestSessionResponse represents a newly issued guest session.
type GuestSessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	ExpiresAt string `json:"expires_at"`
}

// ToGuestSessionResponse converts an IssueGuestSessionOutput to its DTO.
func ToGuestSessionResponse(output *session.IssueGuestSessionOutput) GuestSessionResponse {
	return GuestSessionResponse{
		Token:     output.Token,
		SessionID: output.SessionID.String(),
		Type:      string(output.Type),
		ExpiresAt: FormatTimestamp(output.ExpiresAt),
	}
}

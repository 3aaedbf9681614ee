package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

func TestTokenService_GuestRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")
	session := entity.NewGuestSession(time.Hour)

	token, err := svc.IssueGuestToken(context.Background(), session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != session.ID || got.Type != entity.SessionTypeGuest {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.Token != token {
		t.Error("expected raw token to be kept for forwarding")
	}
}

func TestTokenService_UserTokens(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.IssueUserToken("64f1c0ffee", "ana@example.com", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != entity.SessionTypeUser || got.UserID != "64f1c0ffee" || got.Email != "ana@example.com" {
		t.Errorf("unexpected session: %+v", got)
	}

	t.Run("upstream token without session claims", func(t *testing.T) {
		claims := CustomClaims{
			UserID: "64f1c0ffee",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

		a, err := svc.ValidateToken(context.Background(), raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, _ := svc.ValidateToken(context.Background(), raw)
		if a.Type != entity.SessionTypeUser {
			t.Errorf("expected user session, got %s", a.Type)
		}
		if a.ID != b.ID {
			t.Error("expected stable derived session ID")
		}
	})
}

func TestTokenService_Rejections(t *testing.T) {
	svc := NewTokenService("test-secret")
	other := NewTokenService("other-secret")
	ctx := context.Background()

	expired := NewTokenService("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.IssueUserToken("u1", "", time.Hour)

	foreignToken, _ := other.IssueUserToken("u1", "", time.Hour)

	badType, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		SessionType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "garbage", token: "not-a-token", want: domainerror.ErrInvalidToken},
		{name: "wrong secret", token: foreignToken, want: domainerror.ErrInvalidToken},
		{name: "expired", token: expiredToken, want: domainerror.ErrExpiredToken},
		{name: "unknown session type", token: badType, want: domainerror.ErrInvalidSessionType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tt.token)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

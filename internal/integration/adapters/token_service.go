// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
)

const tokenIssuer = "budget-insights"

// userSessionNamespace derives stable session IDs for user tokens that carry no session_id.
var userSessionNamespace = uuid.MustParse("6f1c2a4e-8d1b-4b7a-9c53-0f2e7d9a1b64")

// CustomClaims represents the custom claims for session tokens.
type CustomClaims struct {
	SessionID   string `json:"session_id,omitempty"`
	SessionType string `json:"session_type,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 session tokens. User tokens are minted by the
// budgeting API with the shared secret; guest tokens are minted here.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// IssueGuestToken signs a token for a new guest session.
func (s *TokenService) IssueGuestToken(_ context.Context, session *entity.Session) (string, error) {
	return s.sign(CustomClaims{
		SessionID:   session.ID.String(),
		SessionType: string(entity.SessionTypeGuest),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(s.now().UTC()),
			NotBefore: jwt.NewNumericDate(s.now().UTC()),
			Issuer:    tokenIssuer,
			Subject:   session.ID.String(),
		},
	})
}

// IssueUserToken signs a token for a registered user.
func (s *TokenService) IssueUserToken(userID, email string, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	return s.sign(CustomClaims{
		SessionID:   uuid.New().String(),
		SessionType: string(entity.SessionTypeUser),
		UserID:      userID,
		Email:       email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID,
		},
	})
}

// ValidateToken validates a bearer token and returns the session it describes.
func (s *TokenService) ValidateToken(_ context.Context, tokenString string) (*entity.Session, error) {
	claims, err := s.parseJWT(tokenString)
	if err != nil {
		return nil, err
	}

	sessionType := entity.SessionType(claims.SessionType)
	if sessionType == "" && claims.UserID != "" {
		sessionType = entity.SessionTypeUser
	}
	if !sessionType.IsValid() {
		return nil, domainerror.ErrInvalidSessionType
	}
	if sessionType == entity.SessionTypeUser && claims.UserID == "" {
		return nil, fmt.Errorf("%w: user token without user_id", domainerror.ErrInvalidToken)
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		if sessionType == entity.SessionTypeGuest {
			return nil, fmt.Errorf("%w: invalid session_id", domainerror.ErrInvalidToken)
		}
		sessionID = uuid.NewSHA1(userSessionNamespace, []byte(claims.UserID))
	}

	session := &entity.Session{
		ID:     sessionID,
		Type:   sessionType,
		UserID: claims.UserID,
		Email:  claims.Email,
		Token:  tokenString,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func (s *TokenService) sign(claims CustomClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// parseJWT parses and validates a JWT token.
func (s *TokenService) parseJWT(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	return claims, nil
}

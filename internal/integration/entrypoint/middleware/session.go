// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/domain/entity"
	domainerror "github.com/budget-tracker/insights/internal/domain/error"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// SessionKey is the context key for the caller's session.
	SessionKey ContextKey = "session"
)

// SessionMiddleware resolves the bearer token into a guest or user session.
type SessionMiddleware struct {
	tokenService adapter.SessionTokenService
}

// NewSessionMiddleware creates a new session middleware instance.
func NewSessionMiddleware(tokenService adapter.SessionTokenService) *SessionMiddleware {
	return &SessionMiddleware{
		tokenService: tokenService,
	}
}

// RequireSession returns a Gin middleware handler that rejects requests without a
// valid session token.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			abortUnauthorized(c, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		session, err := m.tokenService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domainerror.ErrExpiredToken):
				abortUnauthorized(c, "Session has expired", domainerror.ErrCodeExpiredToken)
			case errors.Is(err, domainerror.ErrInvalidSessionType):
				abortUnauthorized(c, "Invalid session type", domainerror.ErrCodeInvalidSessionType)
			default:
				abortUnauthorized(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			}
			return
		}

		c.Set(string(SessionKey), session)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.SessionErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetSessionFromContext extracts the session from the Gin context.
func GetSessionFromContext(c *gin.Context) (*entity.Session, bool) {
	value, exists := c.Get(string(SessionKey))
	if !exists {
		return nil, false
	}
	session, ok := value.(*entity.Session)
	return session, ok
}

// Package error defines domain-specific errors for the budget insights service.
package error

import "errors"

// Session domain errors.
var (
	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidSessionType is returned when a token carries an unknown session type.
	ErrInvalidSessionType = errors.New("invalid session type")
)

// SessionErrorCode defines error codes for session errors.
// Format: SES-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	// Token errors (03XXXX)
	ErrCodeInvalidToken       SessionErrorCode = "SES-030001"
	ErrCodeExpiredToken       SessionErrorCode = "SES-030002"
	ErrCodeMissingToken       SessionErrorCode = "SES-030003"
	ErrCodeInvalidSessionType SessionErrorCode = "SES-030004"

	// Throttling errors (04XXXX)
	ErrCodeRateLimited SessionErrorCode = "SES-040001"

	// Internal errors (99XXXX)
	ErrCodeSessionIssueFailed SessionErrorCode = "SES-990001"
)

// SessionError represents a session error with code and message.
type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code SessionErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

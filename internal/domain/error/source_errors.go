// Package error defines domain-specific errors for the budget insights service.
package error

import (
	"errors"
	"fmt"
)

// Upstream source errors.
var (
	// ErrSourceUnavailable is returned when the upstream API cannot be reached.
	ErrSourceUnavailable = errors.New("upstream source unavailable")

	// ErrSourceUnauthorized is returned when the upstream API rejects the forwarded token.
	ErrSourceUnauthorized = errors.New("upstream source rejected credentials")

	// ErrSourceBadPayload is returned when the upstream response cannot be decoded.
	ErrSourceBadPayload = errors.New("upstream source returned an invalid payload")
)

// SourceErrorCode defines error codes for upstream source errors.
// Format: SRC-XXYYYY where XX is category and YYYY is specific error.
type SourceErrorCode string

const (
	ErrCodeSourceUnauthorized SourceErrorCode = "SRC-030001"
	ErrCodeSourceUnavailable  SourceErrorCode = "SRC-990001"
	ErrCodeSourceBadPayload   SourceErrorCode = "SRC-990002"
)

// SourceError represents a failed upstream fetch of one resource.
type SourceError struct {
	Code       SourceErrorCode
	Resource   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	msg := fmt.Sprintf("fetch %s", e.Resource)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError for the given resource.
func NewSourceError(code SourceErrorCode, resource string, statusCode int, err error) *SourceError {
	return &SourceError{
		Code:       code,
		Resource:   resource,
		StatusCode: statusCode,
		Err:        err,
	}
}

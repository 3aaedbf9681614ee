// Package error defines domain-specific errors for the budget insights service.
package error

import "errors"

// Preference domain errors.
var (
	// ErrPreferenceNotFound is returned when no value is stored for a key.
	ErrPreferenceNotFound = errors.New("preference not found")

	// ErrUnknownPreferenceKey is returned when a key is not one of the accepted keys.
	ErrUnknownPreferenceKey = errors.New("unknown preference key")

	// ErrPreferenceValueTooLong is returned when a value exceeds the maximum length.
	ErrPreferenceValueTooLong = errors.New("preference value too long")
)

// PreferenceErrorCode defines error codes for preference errors.
// Format: PRF-XXYYYY where XX is category and YYYY is specific error.
type PreferenceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodePreferenceNotFound     PreferenceErrorCode = "PRF-010001"
	ErrCodeUnknownPreferenceKey   PreferenceErrorCode = "PRF-010002"
	ErrCodePreferenceValueTooLong PreferenceErrorCode = "PRF-010003"

	// Internal errors (99XXXX)
	ErrCodePreferenceStoreFailure PreferenceErrorCode = "PRF-990001"
)

// PreferenceError represents a preference error with code and message.
type PreferenceError struct {
	Code    PreferenceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PreferenceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PreferenceError) Unwrap() error {
	return e.Err
}

// NewPreferenceError creates a new PreferenceError with the given code and message.
func NewPreferenceError(code PreferenceErrorCode, message string, err error) *PreferenceError {
	return &PreferenceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

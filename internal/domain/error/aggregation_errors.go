// Package error defines domain-specific errors for the budget insights service.
package error

import "errors"

// Aggregation domain errors.
var (
	// ErrInvalidEntryDate is returned when an entry's date cannot be projected onto months.
	ErrInvalidEntryDate = errors.New("invalid entry date")

	// ErrInvalidGranularity is returned when an overview granularity is unknown.
	ErrInvalidGranularity = errors.New("granularity must be: monthly, quarterly, or yearly")
)

// AggregationErrorCode defines error codes for aggregation errors.
// Format: AGG-XXYYYY where XX is category and YYYY is specific error.
type AggregationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEntryDate AggregationErrorCode = "AGG-010001"
)

// AggregationError represents an aggregation error for a single entry.
type AggregationError struct {
	Code    AggregationErrorCode
	EntryID string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AggregationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// NewAggregationError creates a new AggregationError with the given code and message.
func NewAggregationError(code AggregationErrorCode, entryID, message string, err error) *AggregationError {
	return &AggregationError{
		Code:    code,
		EntryID: entryID,
		Message: message,
		Err:     err,
	}
}

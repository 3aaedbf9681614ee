// Package error defines domain-specific errors for the budget insights service.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidMonthParam is returned when the month query parameter is invalid.
	ErrInvalidMonthParam = errors.New("month must be a month name, abbreviation or number")

	// ErrInvalidEntryKind is returned when kind is not income, expense or savings.
	ErrInvalidEntryKind = errors.New("kind must be: income, expense, or savings")

	// ErrInvalidLimit is returned when the ranking limit is not a positive integer.
	ErrInvalidLimit = errors.New("limit must be a positive integer")

	// ErrInvalidYear is returned when the year parameter is invalid.
	ErrInvalidYear = errors.New("year must be a four digit number")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonthParam  DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidEntryKind   DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidLimit       DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidGranularity DashboardErrorCode = "DSH-010004"
	ErrCodeInvalidYear        DashboardErrorCode = "DSH-010005"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

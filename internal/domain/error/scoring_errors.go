// Package error defines domain-specific errors for the Eco Impact application.
package error

import "fmt"

// Scoring domain errors.
var (
	// ErrInvalidMonth is returned when month is not formatted as YYYY-MM.
	ErrInvalidMonth = fmt.Errorf("month must be formatted as YYYY-MM: %w", ErrValidation)

	// ErrInvalidDays is returned when the rolling window is not a positive number of days.
	ErrInvalidDays = fmt.Errorf("days must be a positive integer: %w", ErrValidation)

	// ErrConflictingPeriod is returned when both month and days are supplied.
	ErrConflictingPeriod = fmt.Errorf("month and days are mutually exclusive: %w", ErrValidation)

	// ErrInvalidMonths is returned when the monthly history length is out of range.
	ErrInvalidMonths = fmt.Errorf("months out of range: %w", ErrValidation)
)

// ScoringErrorCode defines error codes for scoring errors.
// Format: SCO-XXYYYY where XX is category and YYYY is specific error.
type ScoringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonth       ScoringErrorCode = "SCO-010001"
	ErrCodeInvalidDays        ScoringErrorCode = "SCO-010002"
	ErrCodeConflictingPeriod  ScoringErrorCode = "SCO-010003"
	ErrCodeInvalidMonths      ScoringErrorCode = "SCO-010004"

	// Upstream errors (99XXXX)
	ErrCodeScoringUpstream ScoringErrorCode = "SCO-990001"
)

// ScoringError represents a scoring error with code and message.
type ScoringError struct {
	Code    ScoringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScoringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScoringError) Unwrap() error {
	return e.Err
}

// NewScoringError creates a new ScoringError with the given code and message.
func NewScoringError(code ScoringErrorCode, message string, err error) *ScoringError {
	return &ScoringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

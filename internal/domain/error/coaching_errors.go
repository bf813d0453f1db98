// Package error defines domain-specific errors for the Eco Impact application.
package error

import "fmt"

// Coaching domain errors.
var (
	// ErrInvalidAckAction is returned when the action is neither accepted nor dismissed.
	ErrInvalidAckAction = fmt.Errorf("action must be accepted or dismissed: %w", ErrValidation)

	// ErrMissingAckFields is returned when suggestion_id, action or user_id is absent.
	ErrMissingAckFields = fmt.Errorf("missing acknowledgement fields: %w", ErrValidation)

	// ErrInvalidWeeks is returned when the coaching lookback is not a positive number.
	ErrInvalidWeeks = fmt.Errorf("weeks must be a positive integer: %w", ErrValidation)

	// ErrSuggestionNotFound is returned when the suggestion was never generated for the user.
	ErrSuggestionNotFound = fmt.Errorf("suggestion not found: %w", ErrNotFound)

	// ErrAckUserMismatch is returned when the payload user differs from the authenticated one.
	ErrAckUserMismatch = fmt.Errorf("user_id does not match authenticated user: %w", ErrValidation)

	// ErrAckStoreUnavailable is returned when the ack store cannot be read or written.
	ErrAckStoreUnavailable = fmt.Errorf("acknowledgement store unavailable: %w", ErrUpstreamUnavailable)
)

// CoachingErrorCode defines error codes for coaching errors.
// Format: CCH-XXYYYY where XX is category and YYYY is specific error.
type CoachingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAckAction CoachingErrorCode = "CCH-010001"
	ErrCodeMissingAckFields CoachingErrorCode = "CCH-010002"
	ErrCodeInvalidWeeks     CoachingErrorCode = "CCH-010003"

	// Lookup errors (02XXXX)
	ErrCodeSuggestionNotFound CoachingErrorCode = "CCH-020001"

	// Access errors (03XXXX)
	ErrCodeAckUserMismatch CoachingErrorCode = "CCH-030001"

	// Upstream errors (99XXXX)
	ErrCodeAckStoreUnavailable CoachingErrorCode = "CCH-990001"
	ErrCodeCoachingUpstream    CoachingErrorCode = "CCH-990002"
)

// CoachingError represents a coaching error with code and message.
type CoachingError struct {
	Code    CoachingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CoachingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CoachingError) Unwrap() error {
	return e.Err
}

// NewCoachingError creates a new CoachingError with the given code and message.
func NewCoachingError(code CoachingErrorCode, message string, err error) *CoachingError {
	return &CoachingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

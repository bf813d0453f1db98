// Package error defines domain-specific errors for the Eco Impact application.
package error

import "fmt"

// Leaderboard domain errors.
var (
	// ErrInvalidLeaderboardLimit is returned when the requested board size is not a positive number.
	ErrInvalidLeaderboardLimit = fmt.Errorf("limit must be a positive integer: %w", ErrValidation)

	// ErrLeaderboardSourceUnavailable is returned when live candidates cannot be loaded.
	ErrLeaderboardSourceUnavailable = fmt.Errorf("leaderboard source unavailable: %w", ErrUpstreamUnavailable)
)

// LeaderboardErrorCode defines error codes for leaderboard errors.
// Format: LDB-XXYYYY where XX is category and YYYY is specific error.
type LeaderboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidLeaderboardLimit LeaderboardErrorCode = "LDB-010001"

	// Upstream errors (99XXXX)
	ErrCodeLeaderboardSourceUnavailable LeaderboardErrorCode = "LDB-990001"
)

// LeaderboardError represents a leaderboard error with code and message.
type LeaderboardError struct {
	Code    LeaderboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LeaderboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LeaderboardError) Unwrap() error {
	return e.Err
}

// NewLeaderboardError creates a new LeaderboardError with the given code and message.
func NewLeaderboardError(code LeaderboardErrorCode, message string, err error) *LeaderboardError {
	return &LeaderboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

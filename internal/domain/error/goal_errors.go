// Package error defines domain-specific errors for the Eco Impact application.
package error

import (
	"errors"
	"fmt"
)

// Goal domain errors.
var (
	// ErrInvalidGoalInput is returned when a goal to be created is malformed.
	ErrInvalidGoalInput = fmt.Errorf("goal needs a title and a positive target: %w", ErrValidation)

	// ErrInvalidGoalShape is returned when a stored goal does not match the served schema.
	ErrInvalidGoalShape = errors.New("goal does not match the v1 goal schema")

	// ErrGoalStoreUnavailable is returned when goals cannot be loaded.
	ErrGoalStoreUnavailable = fmt.Errorf("goal store unavailable: %w", ErrUpstreamUnavailable)
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidGoalInput GoalErrorCode = "GOL-010001"

	// Schema errors (02XXXX)
	ErrCodeInvalidGoalShape GoalErrorCode = "GOL-020001"

	// Upstream errors (99XXXX)
	ErrCodeGoalStoreUnavailable GoalErrorCode = "GOL-990001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

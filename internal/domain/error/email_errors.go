// Package error defines domain-specific errors for the Eco Impact application.
package error

import (
	"errors"
	"fmt"
)

// Email domain errors.
var (
	// ErrPermanentEmailFailure is returned when the provider rejects a message for good.
	ErrPermanentEmailFailure = fmt.Errorf("permanent email failure: %w", ErrValidation)

	// ErrTemporaryEmailFailure is returned when a send may succeed on retry.
	ErrTemporaryEmailFailure = fmt.Errorf("temporary email failure: %w", ErrUpstreamUnavailable)

	// ErrTemplateRenderFailed is returned when email template rendering fails.
	ErrTemplateRenderFailed = errors.New("failed to render email template")
)

// EmailErrorCode defines error codes for email errors.
// Format: EML-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Send errors (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EML-020001"

	// Template errors (03XXXX)
	ErrCodeTemplateRenderFailed EmailErrorCode = "EML-030001"

	// Upstream errors (99XXXX)
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-990001"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailFailure reports whether err must not be retried.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Code != ErrCodeTemporaryEmailFailure
}

// Package error defines domain-specific errors for the Eco Impact application.
package error

import "errors"

// Failure kinds shared by every domain. Coded errors wrap one of these so the
// API boundary can map them without knowing each domain.
var (
	// ErrValidation is the kind for malformed payloads and records. Not retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is the kind for references to absent suggestions or users.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable is the kind for failures of a data-access collaborator.
	// Retryable by the caller.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err references an absent entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUpstreamUnavailable reports whether err comes from a failed collaborator.
func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

// Package error defines domain-specific errors for the Eco Impact application.
package error

import "fmt"

// Transaction domain errors.
var (
	// ErrInvalidTransactionAmount is returned when the amount is not coercible to a number
	// or is negative under the reject refund policy.
	ErrInvalidTransactionAmount = fmt.Errorf("invalid transaction amount: %w", ErrValidation)

	// ErrInvalidTransactionDate is returned when the date is not a valid calendar date.
	ErrInvalidTransactionDate = fmt.Errorf("invalid transaction date: %w", ErrValidation)

	// ErrMissingTransactionFields is returned when amount or date is absent.
	ErrMissingTransactionFields = fmt.Errorf("missing transaction fields: %w", ErrValidation)

	// ErrInvalidTransactionLimit is returned when the requested page size is out of range.
	ErrInvalidTransactionLimit = fmt.Errorf("invalid transaction limit: %w", ErrValidation)

	// ErrTransactionStoreUnavailable is returned when the transaction store cannot be read.
	ErrTransactionStoreUnavailable = fmt.Errorf("transaction store unavailable: %w", ErrUpstreamUnavailable)
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010003"
	ErrCodeInvalidLimit             TransactionErrorCode = "TXN-010004"

	// Upstream errors (99XXXX)
	ErrCodeTransactionStoreUnavailable TransactionErrorCode = "TXN-990001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

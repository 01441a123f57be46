package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every ledger component. Callers compare with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrInvalidState        = errors.New("invalid state")
	ErrDuplicateApproval   = errors.New("duplicate approval")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrWalletInactive      = errors.New("wallet inactive")
	ErrInvalidCredential   = errors.New("invalid approval credential")
	ErrAlreadyAllocated    = errors.New("payment already allocated")
	ErrTransferFailed      = errors.New("transfer execution failed")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// ErrInvalidAmount is a validation error for non-positive amounts.
var ErrInvalidAmount = &ValidationError{Field: "amount", Reason: "must be greater than zero"}

// ValidationError describes input rejected before any state was touched.
// It matches ErrValidation, and also Err when one is set.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}

	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Retryable reports whether the operation that produced err can be retried from scratch.
func Retryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}

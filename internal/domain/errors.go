package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("validation failed")

	ErrInsufficientBalance        = errors.New("insufficient balance: account cannot go negative")
	ErrInsufficientInventory      = errors.New("insufficient inventory for product")
	ErrConcurrencyConflict        = errors.New("concurrent modification detected, retry the request")
	ErrCannotReverseConsumedBatch = errors.New("cannot reverse: batch has been consumed by a later transaction")
	ErrTransactionHasDependents   = errors.New("cannot reverse: other transactions reference this transaction")
	ErrBatchOverflow              = errors.New("restore exceeds batch original quantity")

	// Not found
	ErrAccountNotFound      = errors.New("account not found")
	ErrCounterpartyNotFound = errors.New("counterparty not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrBatchNotFound        = errors.New("batch not found")
	ErrTransactionNotFound  = errors.New("transaction not found")

	// Validation
	ErrInvalidAmount          = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrInvalidQuantity        = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrUnknownTransactionType = fmt.Errorf("%w: unknown transaction type", ErrValidation)
	ErrSameAccount            = fmt.Errorf("%w: source and destination must differ", ErrValidation)
	ErrInactiveAccount        = fmt.Errorf("%w: account is inactive", ErrValidation)
	ErrInactiveCounterparty   = fmt.Errorf("%w: counterparty is inactive", ErrValidation)

	ErrCounterpartyKindMismatch = fmt.Errorf("%w: counterparty kind does not match transaction", ErrValidation)
)

// Validationf builds an error that matches ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// ErrorKind returns a stable label for err, used in metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrInsufficientInventory):
		return "insufficient_inventory"
	case errors.Is(err, ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, ErrCannotReverseConsumedBatch):
		return "cannot_reverse_consumed_batch"
	case errors.Is(err, ErrTransactionHasDependents):
		return "has_dependents"
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrCounterpartyNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrBatchNotFound),
		errors.Is(err, ErrTransactionNotFound):
		return "not_found"
	default:
		return "internal"
	}
}

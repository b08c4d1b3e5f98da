package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
)

// Domain errors returned by Decide functions and command handlers.
var (
	ErrBookNotFound        = fmt.Errorf("book %w", ErrNotFound)
	ErrCustomerNotFound    = fmt.Errorf("customer %w", ErrNotFound)
	ErrLoanNotFound        = fmt.Errorf("loan %w", ErrNotFound)
	ErrAlreadyLoaned       = fmt.Errorf("%w: book is already loaned", ErrInvalidState)
	ErrBookCurrentlyLoaned = fmt.Errorf("%w: book is currently loaned out and cannot be removed", ErrInvalidState)
	ErrCustomerHasOpenLoan = fmt.Errorf("%w: customer is currently loaning a book and cannot be removed", ErrInvalidState)
	ErrUnknownLoanType     = fmt.Errorf("%w: unknown loan type", ErrInvalidInput)
)

// ErrorKind names the class of a domain error for display and metrics.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindNotFound     ErrorKind = "not_found"
	KindInvalidState ErrorKind = "invalid_state"
	KindInvalidInput ErrorKind = "invalid_input"
	KindInternal     ErrorKind = "internal"
)

// KindOf classifies err. Errors outside the taxonomy are KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// IsBusinessRuleViolation reports whether err is a domain rejection rather than an infrastructure failure.
func IsBusinessRuleViolation(err error) bool {
	kind := KindOf(err)
	return kind == KindNotFound || kind == KindInvalidState || kind == KindInvalidInput
}

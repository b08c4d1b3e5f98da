package lendbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the CommandHandler.
type RecordStore interface {
	FindBookByID(ctx context.Context, id int64) (recordstore.StorableBook, error)
	FindCustomerByID(ctx context.Context, id int64) (recordstore.StorableCustomer, error)
	LendBook(ctx context.Context, loan recordstore.StorableLoan) error
}

// Result is the outcome of a successful lending.
type Result struct {
	shell.HandlerResult

	BookTitle string
	LoanType  core.LoanType
	LoanedOn  time.Time
	DueAt     core.DueAt
}

// CommandHandler orchestrates the lending workflow with pure business logic and retry.
// It handles Read -> Decide -> Apply. External wrappers handle all observability concerns.
type CommandHandler struct {
	store        RecordStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store RecordStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the lending workflow, retrying on concurrency conflicts with exponential backoff.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	result.HandlerResult = shell.NewSuccessResult(retryMetrics)

	return result, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	ctx = recordstore.WithStrongConsistency(ctx)

	// Read phase
	s, err := h.readState(ctx, command)
	if err != nil {
		return Result{}, err
	}

	// Business logic phase - delegate to pure core function
	decision := Decide(s, command)
	if decisionErr := decision.HasError(); decisionErr != nil {
		return Result{}, decisionErr
	}

	event, ok := decision.Event.(core.BookLentToCustomer)
	if !ok {
		return Result{}, fmt.Errorf("%w: unexpected event %s", shell.ErrMappingToStorableFailed, decision.Event.EventType())
	}

	// Apply phase
	storableLoan, err := shell.StorableLoanFrom(event.Loan())
	if err != nil {
		return Result{}, err
	}

	if lendErr := h.store.LendBook(ctx, storableLoan); lendErr != nil {
		if errors.Is(lendErr, recordstore.ErrReferencedRecordMissing) {
			return Result{}, errors.Join(core.ErrCustomerNotFound, lendErr)
		}

		return Result{}, lendErr
	}

	return Result{
		BookTitle: s.Book.Title,
		LoanType:  s.Book.LoanType,
		LoanedOn:  event.LoanedOn,
		DueAt:     event.DueAt,
	}, nil
}

func (h CommandHandler) readState(ctx context.Context, command Command) (State, error) {
	var s State

	book, err := h.store.FindBookByID(ctx, command.BookID)
	switch {
	case err == nil:
		s.Book = shell.BookFrom(book)
		s.BookFound = true
	case !errors.Is(err, recordstore.ErrRecordNotFound):
		return State{}, err
	}

	_, err = h.store.FindCustomerByID(ctx, command.CustomerID)
	switch {
	case err == nil:
		s.CustomerFound = true
	case !errors.Is(err, recordstore.ErrRecordNotFound):
		return State{}, err
	}

	return s, nil
}

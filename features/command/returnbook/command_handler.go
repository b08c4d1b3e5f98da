package returnbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the CommandHandler.
type RecordStore interface {
	FindOpenLoan(ctx context.Context, customerID int64, bookID int64) (recordstore.StorableLoan, error)
	FindBookByID(ctx context.Context, id int64) (recordstore.StorableBook, error)
	FindCustomerByID(ctx context.Context, id int64) (recordstore.StorableCustomer, error)
	ReturnBook(ctx context.Context, customerID int64, bookID int64, lateLoan *recordstore.StorableLateLoan) error
}

// Result is the outcome of a successful return. LateLoan is set only for late returns.
type Result struct {
	shell.HandlerResult

	OnTime   bool
	DueAt    core.DueAt
	LateLoan *core.LateLoan
}

// CommandHandler orchestrates the return workflow: Read -> Decide -> Apply, with retry.
type CommandHandler struct {
	store        RecordStore
	newID        func() uuid.UUID
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

// WithIDGenerator replaces uuid.New for late-loan ids.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(h *CommandHandler) {
		h.newID = newID
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store RecordStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
		newID: uuid.New,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the return workflow, retrying on concurrency conflicts with exponential backoff.
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

	// Business logic phase
	decision := Decide(s, command, h.newID())
	if decisionErr := decision.HasError(); decisionErr != nil {
		return Result{}, decisionErr
	}

	// Apply phase
	switch event := decision.Event.(type) {
	case core.BookReturnedByCustomer:
		if returnErr := h.store.ReturnBook(ctx, command.CustomerID, command.BookID, nil); returnErr != nil {
			return Result{}, returnErr
		}

		return Result{OnTime: true, DueAt: event.DueAt}, nil

	case core.BookReturnedLate:
		lateLoan := event.LateLoan()

		storableLateLoan, mapErr := shell.StorableLateLoanFrom(lateLoan)
		if mapErr != nil {
			return Result{}, mapErr
		}

		if returnErr := h.store.ReturnBook(ctx, command.CustomerID, command.BookID, &storableLateLoan); returnErr != nil {
			return Result{}, returnErr
		}

		return Result{OnTime: false, DueAt: event.DueAt, LateLoan: &lateLoan}, nil

	default:
		return Result{}, fmt.Errorf("%w: unexpected event %s", shell.ErrMappingToStorableFailed, decision.Event.EventType())
	}
}

func (h CommandHandler) readState(ctx context.Context, command Command) (State, error) {
	storableLoan, err := h.store.FindOpenLoan(ctx, command.CustomerID, command.BookID)
	if errors.Is(err, recordstore.ErrRecordNotFound) {
		return State{}, nil
	}

	if err != nil {
		return State{}, err
	}

	loan, err := shell.LoanFrom(storableLoan)
	if err != nil {
		return State{}, err
	}

	s := State{Loan: loan, LoanFound: true}

	// The loan's foreign keys keep both records alive while it is open.
	book, err := h.store.FindBookByID(ctx, command.BookID)
	if err != nil && !errors.Is(err, recordstore.ErrRecordNotFound) {
		return State{}, err
	}

	s.BookTitle = book.Title

	customer, err := h.store.FindCustomerByID(ctx, command.CustomerID)
	if err != nil && !errors.Is(err, recordstore.ErrRecordNotFound) {
		return State{}, err
	}

	s.CustomerName = customer.Name

	return s, nil
}

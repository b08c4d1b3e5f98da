package removebook

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the CommandHandler.
type RecordStore interface {
	FindBookByID(ctx context.Context, id int64) (recordstore.StorableBook, error)
	DeleteAvailableBook(ctx context.Context, id int64) error
}

// Result is the outcome of a successful removal.
type Result struct {
	shell.HandlerResult

	Book    core.Book
	Removed core.BookRemovedFromCatalog
}

// CommandHandler orchestrates the removal workflow: Read -> Decide -> Apply, with retry.
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

// CanRemove reports whether the book could be removed now and returns it for display.
// It has no side effects.
func (h CommandHandler) CanRemove(ctx context.Context, bookID core.BookID) (core.Book, error) {
	s, err := h.readState(recordstore.WithStrongConsistency(ctx), bookID)
	if err != nil {
		return core.Book{}, err
	}

	if guardErr := Guard(s, bookID); guardErr != nil {
		return s.Book, guardErr
	}

	return s.Book, nil
}

// Handle executes the removal workflow, retrying on concurrency conflicts with exponential backoff.
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

	s, err := h.readState(ctx, command.BookID)
	if err != nil {
		return Result{}, err
	}

	decision := Decide(s, command)
	if decisionErr := decision.HasError(); decisionErr != nil {
		return Result{}, decisionErr
	}

	removed, ok := decision.Event.(core.BookRemovedFromCatalog)
	if !ok {
		return Result{}, fmt.Errorf("%w: unexpected event %s", shell.ErrMappingToStorableFailed, decision.Event.EventType())
	}

	if deleteErr := h.store.DeleteAvailableBook(ctx, command.BookID); deleteErr != nil {
		return Result{}, deleteErr
	}

	return Result{Book: s.Book, Removed: removed}, nil
}

func (h CommandHandler) readState(ctx context.Context, bookID core.BookID) (State, error) {
	book, err := h.store.FindBookByID(ctx, bookID)
	if errors.Is(err, recordstore.ErrRecordNotFound) {
		return State{}, nil
	}

	if err != nil {
		return State{}, err
	}

	return State{Book: shell.BookFrom(book), BookFound: true}, nil
}

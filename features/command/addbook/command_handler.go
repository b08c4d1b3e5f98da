package addbook

import (
	"context"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the CommandHandler.
type RecordStore interface {
	InsertBook(ctx context.Context, book recordstore.StorableBook) (int64, error)
}

// Validator checks a command against its struct tags.
type Validator interface {
	Validate(input any) error
}

// Result is the outcome of a successful insert.
type Result struct {
	shell.HandlerResult

	Book core.Book
}

// CommandHandler validates the command and inserts the book.
type CommandHandler struct {
	store        RecordStore
	validator    Validator
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
func NewCommandHandler(store RecordStore, validator Validator, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:     store,
		validator: validator,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle validates the command and inserts the book.
// Invalid input is rejected with an error matching core.ErrInvalidInput before the store is touched.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if err := h.validator.Validate(command); err != nil {
		return Result{HandlerResult: shell.NewErrorResult(shell.RetryMetrics{LastErrorType: "other"})}, err
	}

	book := core.Book{
		Title:         command.Title,
		Author:        command.Author,
		YearPublished: command.YearPublished,
		LoanType:      command.LoanType,
		Status:        core.BookAvailable,
	}

	var id int64

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var insertErr error
		id, insertErr = h.store.InsertBook(recordstore.WithStrongConsistency(retryCtx), shell.StorableBookFrom(book))

		return insertErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	book.ID = id

	return Result{HandlerResult: shell.NewSuccessResult(retryMetrics), Book: book}, nil
}

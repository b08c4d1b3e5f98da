package registercustomer

import (
	"context"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the CommandHandler.
type RecordStore interface {
	InsertCustomer(ctx context.Context, customer recordstore.StorableCustomer) (int64, error)
}

// Validator checks a command against its struct tags.
type Validator interface {
	Validate(input any) error
}

// Result is the outcome of a successful registration.
type Result struct {
	shell.HandlerResult

	Customer core.Customer
}

// CommandHandler validates the command and inserts the customer.
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

// Handle validates the command and inserts the customer.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if err := h.validator.Validate(command); err != nil {
		return Result{HandlerResult: shell.NewErrorResult(shell.RetryMetrics{LastErrorType: "other"})}, err
	}

	customer := core.Customer{
		Name: command.Name,
		City: command.City,
		Age:  command.Age,
	}

	var id int64

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var insertErr error
		id, insertErr = h.store.InsertCustomer(recordstore.WithStrongConsistency(retryCtx), shell.StorableCustomerFrom(customer))

		return insertErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	customer.ID = id

	return Result{HandlerResult: shell.NewSuccessResult(retryMetrics), Customer: customer}, nil
}

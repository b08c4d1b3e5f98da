package menu

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/addbook"
	"github.com/AntonStoeckl/library-records/features/command/lendbook"
	"github.com/AntonStoeckl/library-records/features/command/registercustomer"
	"github.com/AntonStoeckl/library-records/features/command/removebook"
	"github.com/AntonStoeckl/library-records/features/command/removecustomer"
	"github.com/AntonStoeckl/library-records/features/command/returnbook"
	"github.com/AntonStoeckl/library-records/features/query/books"
	"github.com/AntonStoeckl/library-records/features/query/customers"
	"github.com/AntonStoeckl/library-records/features/query/lateloans"
	"github.com/AntonStoeckl/library-records/features/query/openloans"
	"github.com/AntonStoeckl/library-records/shell"
)

var (
	// ErrMissingHandler is returned by New when a handler in Handlers is nil.
	ErrMissingHandler = errors.New("menu handler must not be nil")

	// ErrNilRenderer is returned when WithRenderer gets a nil renderer.
	ErrNilRenderer = errors.New("renderer must not be nil")

	// ErrNilClock is returned when WithClock gets a nil clock.
	ErrNilClock = errors.New("clock must not be nil")
)

// BookRemovalGuard checks whether a book may be removed without changing anything.
type BookRemovalGuard interface {
	CanRemove(ctx context.Context, bookID core.BookID) (core.Book, error)
}

// CustomerRemovalGuard checks whether a customer may be removed without changing anything.
type CustomerRemovalGuard interface {
	CanRemove(ctx context.Context, customerID core.CustomerID) (core.Customer, error)
}

// Handlers is everything the menu calls. Command and query handlers may be observable wrappers.
type Handlers struct {
	AddBook          shell.CoreCommandHandler[addbook.Command, addbook.Result]
	RegisterCustomer shell.CoreCommandHandler[registercustomer.Command, registercustomer.Result]
	LendBook         shell.CoreCommandHandler[lendbook.Command, lendbook.Result]
	ReturnBook       shell.CoreCommandHandler[returnbook.Command, returnbook.Result]
	RemoveBook       shell.CoreCommandHandler[removebook.Command, removebook.Result]
	RemoveCustomer   shell.CoreCommandHandler[removecustomer.Command, removecustomer.Result]

	BookRemovalGuard     BookRemovalGuard
	CustomerRemovalGuard CustomerRemovalGuard

	Books     shell.CoreQueryHandler[books.Query, books.Books]
	Customers shell.CoreQueryHandler[customers.Query, customers.Customers]
	OpenLoans shell.CoreQueryHandler[openloans.Query, openloans.OpenLoans]
	LateLoans shell.CoreQueryHandler[lateloans.Query, lateloans.LateLoans]
}

func (h Handlers) validate() error {
	required := []any{
		h.AddBook, h.RegisterCustomer, h.LendBook, h.ReturnBook, h.RemoveBook, h.RemoveCustomer,
		h.BookRemovalGuard, h.CustomerRemovalGuard,
		h.Books, h.Customers, h.OpenLoans, h.LateLoans,
	}

	for _, handler := range required {
		if handler == nil {
			return ErrMissingHandler
		}
	}

	return nil
}

// Menu runs the interactive session for one operator.
type Menu struct {
	handlers Handlers
	prompter *prompter
	renderer Renderer
	now      func() time.Time
}

// Option configures a Menu.
type Option func(*Menu) error

// WithRenderer replaces the default TextRenderer.
func WithRenderer(renderer Renderer) Option {
	return func(m *Menu) error {
		if renderer == nil {
			return ErrNilRenderer
		}

		m.renderer = renderer

		return nil
	}
}

// WithClock sets the source of OccurredAt for borrow, return and removal commands.
func WithClock(now func() time.Time) Option {
	return func(m *Menu) error {
		if now == nil {
			return ErrNilClock
		}

		m.now = now

		return nil
	}
}

// New creates a Menu reading operator input from in and writing prompts and results to out.
func New(in io.Reader, out io.Writer, handlers Handlers, opts ...Option) (*Menu, error) {
	if err := handlers.validate(); err != nil {
		return nil, err
	}

	m := &Menu{
		handlers: handlers,
		prompter: newPrompter(in, out),
		renderer: NewTextRenderer(out),
		now:      time.Now,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Run loops over the role choice until the operator types "exit" or the input ends.
// It returns nil on a regular exit, ctx.Err() on cancellation, and any output error.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := m.prompter.line("Choose 1-Admin, 2-Customer, or type 'exit' to exit: ")
		if err != nil {
			return endOfSession(err)
		}

		switch strings.ToLower(choice) {
		case "exit":
			return nil
		case "1":
			err = m.adminMenu(ctx)
		case "2":
			err = m.customerMenu(ctx)
		default:
			err = m.renderer.Notice("Invalid choice. Please enter '1', '2', or 'exit'.")
		}

		if err != nil {
			return endOfSession(err)
		}
	}
}

// endOfSession treats exhausted input as a regular exit.
func endOfSession(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

// occurredAt is the timestamp of a command issued now.
func (m *Menu) occurredAt() time.Time {
	return core.ToOccurredAt(m.now())
}

// outcome renders err if set, otherwise the success message.
func (m *Menu) outcome(err error, success string) error {
	if err != nil {
		return m.renderer.Failure(err)
	}

	return m.renderer.Success(success)
}

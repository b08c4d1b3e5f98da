package main

import (
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
	"github.com/AntonStoeckl/library-records/menu"
	"github.com/AntonStoeckl/library-records/recordstore/postgresengine"
	"github.com/AntonStoeckl/library-records/shell"
	"github.com/AntonStoeckl/library-records/shell/observable"
	"github.com/AntonStoeckl/library-records/shell/validation"
)

// buildHandlers creates every handler on top of store and wraps them with the observability options.
// The removal guards are not wrapped; they are read-only checks.
func buildHandlers(store *postgresengine.RecordStore, opts []observable.Option) (menu.Handlers, error) {
	validator, err := validation.New()
	if err != nil {
		return menu.Handlers{}, err
	}

	removeBook := removebook.NewCommandHandler(store)
	removeCustomer := removecustomer.NewCommandHandler(store)

	h := menu.Handlers{
		BookRemovalGuard:     removeBook,
		CustomerRemovalGuard: removeCustomer,
	}

	if h.AddBook, err = wrapCommand[addbook.Command, addbook.Result](addbook.NewCommandHandler(store, validator), opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.RegisterCustomer, err = wrapCommand[registercustomer.Command, registercustomer.Result](
		registercustomer.NewCommandHandler(store, validator), opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.LendBook, err = wrapCommand[lendbook.Command, lendbook.Result](lendbook.NewCommandHandler(store), opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.ReturnBook, err = wrapCommand[returnbook.Command, returnbook.Result](returnbook.NewCommandHandler(store), opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.RemoveBook, err = wrapCommand[removebook.Command, removebook.Result](removeBook, opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.RemoveCustomer, err = wrapCommand[removecustomer.Command, removecustomer.Result](removeCustomer, opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.Books, err = wrapQuery[books.Query, books.Books](books.NewQueryHandler(store), opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.Customers, err = wrapQuery[customers.Query, customers.Customers](customers.NewQueryHandler(store), opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.OpenLoans, err = wrapQuery[openloans.Query, openloans.OpenLoans](openloans.NewQueryHandler(store), opts); err != nil {
		return menu.Handlers{}, err
	}

	if h.LateLoans, err = wrapQuery[lateloans.Query, lateloans.LateLoans](lateloans.NewQueryHandler(store), opts); err != nil {
		return menu.Handlers{}, err
	}

	return h, nil
}

func wrapCommand[C shell.Command, R shell.CommandResult](
	handler shell.CoreCommandHandler[C, R],
	opts []observable.Option,
) (shell.CoreCommandHandler[C, R], error) {

	wrapper, err := observable.NewCommandWrapper(handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func wrapQuery[Q shell.Query, R shell.QueryResult](
	handler shell.CoreQueryHandler[Q, R],
	opts []observable.Option,
) (shell.CoreQueryHandler[Q, R], error) {

	wrapper, err := observable.NewQueryWrapper(handler, opts...)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

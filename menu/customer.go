package menu

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/lendbook"
	"github.com/AntonStoeckl/library-records/features/command/returnbook"
	"github.com/AntonStoeckl/library-records/features/query/customers"
	"github.com/AntonStoeckl/library-records/features/query/openloans"
)

const (
	customerLoanBook = iota + 1
	customerReturnBook
	customerDisplayAllBooks
	customerFindBookByName
)

var customerActions = []string{
	customerLoanBook:        "Loan Book",
	customerReturnBook:      "Return Book",
	customerDisplayAllBooks: "Display All Books",
	customerFindBookByName:  "Find Book By Name",
}

// customerMenu lets the operator act as one registered customer.
func (m *Menu) customerMenu(ctx context.Context) error {
	registered, err := m.handlers.Customers.Handle(ctx, customers.BuildQuery(""))
	if err != nil {
		return m.renderer.Failure(err)
	}

	if registered.Len() == 0 {
		return m.renderer.Notice(noCustomersFound)
	}

	if err = m.renderer.Customers(registered.Customers, noCustomersFound); err != nil {
		return err
	}

	customerID, err := m.prompter.id("Enter your customer ID: ")
	if err != nil {
		return err
	}

	found, err := m.handlers.Customers.Handle(ctx, customers.BuildQueryForCustomer(customerID))
	if err != nil {
		return m.renderer.Failure(err)
	}

	if found.Len() == 0 {
		return m.renderer.Failure(fmt.Errorf("%w: id %d", core.ErrCustomerNotFound, customerID))
	}

	customer := found.Customers[0]

	if err = m.renderer.Notice(fmt.Sprintf("Welcome, %s.", customer.Name)); err != nil {
		return err
	}

	return m.customerActions(ctx, customer)
}

func (m *Menu) customerActions(ctx context.Context, customer core.Customer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := m.chooseAction(customerActions)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			return nil
		case customerLoanBook:
			err = m.loanBook(ctx, customer.ID)
		case customerReturnBook:
			err = m.returnBook(ctx, customer.ID)
		case customerDisplayAllBooks:
			err = m.displayBooks(ctx, "", noBooksFound)
		case customerFindBookByName:
			err = m.findBookByName(ctx)
		default:
			err = m.renderer.Notice(invalidActionNotice)
		}

		if err != nil {
			return err
		}
	}
}

func (m *Menu) loanBook(ctx context.Context, customerID core.CustomerID) error {
	if err := m.displayBooks(ctx, "", noBooksFound); err != nil {
		return err
	}

	bookID, err := m.prompter.id("Enter the ID of the book you want to borrow: ")
	if err != nil {
		return err
	}

	result, err := m.handlers.LendBook.Handle(ctx, lendbook.BuildCommand(customerID, bookID, m.occurredAt()))

	return m.outcome(err, fmt.Sprintf("Book '%s' should be returned by %s.", result.BookTitle, result.DueAt))
}

// returnBook lists the customer's open loans and returns the chosen book.
func (m *Menu) returnBook(ctx context.Context, customerID core.CustomerID) error {
	borrowed, err := m.handlers.OpenLoans.Handle(ctx, openloans.BuildQueryForCustomer(customerID))
	if err != nil {
		return m.renderer.Failure(err)
	}

	if borrowed.Len() == 0 {
		return m.renderer.Notice("You have no borrowed books.")
	}

	if err = m.renderer.OpenLoans(borrowed.Loans, ""); err != nil {
		return err
	}

	bookID, err := m.prompter.id("Enter the ID of the book you want to return: ")
	if err != nil {
		return err
	}

	result, err := m.handlers.ReturnBook.Handle(ctx, returnbook.BuildCommand(customerID, bookID, m.occurredAt()))
	if err != nil {
		return m.renderer.Failure(err)
	}

	if result.OnTime {
		return m.renderer.Success("The book was returned on time.")
	}

	return m.renderer.Success(fmt.Sprintf("The book '%s' was returned late.", result.LateLoan.BookName))
}

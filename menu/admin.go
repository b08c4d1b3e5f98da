package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/addbook"
	"github.com/AntonStoeckl/library-records/features/command/registercustomer"
	"github.com/AntonStoeckl/library-records/features/command/removebook"
	"github.com/AntonStoeckl/library-records/features/command/removecustomer"
	"github.com/AntonStoeckl/library-records/features/query/books"
	"github.com/AntonStoeckl/library-records/features/query/customers"
	"github.com/AntonStoeckl/library-records/features/query/lateloans"
	"github.com/AntonStoeckl/library-records/features/query/openloans"
)

const (
	adminAddCustomer = iota + 1
	adminAddBook
	adminDisplayAllBooks
	adminDisplayAllCustomers
	adminDisplayAllLoans
	adminDisplayLateLoans
	adminFindBookByName
	adminFindCustomerByName
	adminRemoveBook
	adminRemoveCustomer
)

var adminActions = []string{
	adminAddCustomer:         "Add Customer",
	adminAddBook:             "Add Book",
	adminDisplayAllBooks:     "Display All Books",
	adminDisplayAllCustomers: "Display All Customers",
	adminDisplayAllLoans:     "Display All Loans",
	adminDisplayLateLoans:    "Display Late Loans",
	adminFindBookByName:      "Find Book By Name",
	adminFindCustomerByName:  "Find Customer By Name",
	adminRemoveBook:          "Remove Book",
	adminRemoveCustomer:      "Remove Customer",
}

const (
	noBooksFound            = "No books found."
	noCustomersFound        = "No customers found."
	invalidActionNotice     = "Invalid choice. Please try again."
	chooseActionQuestion    = "Choose an action (or type 0 to go back): "
	bookNameQuestion        = "Enter book name: "
	customerNameQuestion    = "Enter customer name: "
	noBooksWithThatName     = "No books found with that name."
	noCustomersWithThatName = "No customers found with that name."
)

func (m *Menu) adminMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := m.chooseAction(adminActions)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			return nil
		case adminAddCustomer:
			err = m.addCustomer(ctx)
		case adminAddBook:
			err = m.addBook(ctx)
		case adminDisplayAllBooks:
			err = m.displayBooks(ctx, "", noBooksFound)
		case adminDisplayAllCustomers:
			err = m.displayCustomers(ctx, "", noCustomersFound)
		case adminDisplayAllLoans:
			err = m.displayAllLoans(ctx)
		case adminDisplayLateLoans:
			err = m.displayLateLoans(ctx)
		case adminFindBookByName:
			err = m.findBookByName(ctx)
		case adminFindCustomerByName:
			err = m.findCustomerByName(ctx)
		case adminRemoveBook:
			err = m.removeBook(ctx)
		case adminRemoveCustomer:
			err = m.removeCustomer(ctx)
		default:
			err = m.renderer.Notice(invalidActionNotice)
		}

		if err != nil {
			return err
		}
	}
}

// chooseAction lists the numbered actions (index 0 unused) and reads the choice.
func (m *Menu) chooseAction(actions []string) (int, error) {
	var list strings.Builder
	for i := 1; i < len(actions); i++ {
		fmt.Fprintf(&list, "%d. %s\n", i, actions[i])
	}

	if _, err := fmt.Fprint(m.prompter.out, list.String()); err != nil {
		return 0, err
	}

	return m.prompter.number(chooseActionQuestion)
}

func (m *Menu) addCustomer(ctx context.Context) error {
	name, err := m.prompter.line("Enter customer name: ")
	if err != nil {
		return err
	}

	city, err := m.prompter.line("Enter customer city: ")
	if err != nil {
		return err
	}

	age, err := m.prompter.number("Enter customer age: ")
	if err != nil {
		return err
	}

	result, err := m.handlers.RegisterCustomer.Handle(ctx, registercustomer.BuildCommand(name, city, age, m.occurredAt()))

	return m.outcome(err, fmt.Sprintf("Customer added successfully with ID %d.", result.Customer.ID))
}

func (m *Menu) addBook(ctx context.Context) error {
	title, err := m.prompter.line(bookNameQuestion)
	if err != nil {
		return err
	}

	author, err := m.prompter.line("Enter author name: ")
	if err != nil {
		return err
	}

	year, err := m.prompter.number("Enter year published: ")
	if err != nil {
		return err
	}

	loanType, err := m.prompter.number(loanTypeQuestion())
	if err != nil {
		return err
	}

	command := addbook.BuildCommand(title, author, year, core.LoanType(loanType), m.occurredAt())
	result, err := m.handlers.AddBook.Handle(ctx, command)

	return m.outcome(err, fmt.Sprintf("Book added successfully with ID %d.", result.Book.ID))
}

// loanTypeQuestion reads like "Enter loan type (1 for 2 days, 2 for 5 days, ...): ".
func loanTypeQuestion() string {
	choices := make([]string, 0, len(core.KnownLoanTypes()))
	for _, loanType := range core.KnownLoanTypes() {
		choices = append(choices, fmt.Sprintf("%d for %s", int(loanType), loanType))
	}

	return fmt.Sprintf("Enter loan type (%s): ", strings.Join(choices, ", "))
}

func (m *Menu) displayBooks(ctx context.Context, titleContains string, empty string) error {
	result, err := m.handlers.Books.Handle(ctx, books.BuildQuery(titleContains))
	if err != nil {
		return m.renderer.Failure(err)
	}

	return m.renderer.Books(result.Books, empty)
}

func (m *Menu) displayCustomers(ctx context.Context, nameContains string, empty string) error {
	result, err := m.handlers.Customers.Handle(ctx, customers.BuildQuery(nameContains))
	if err != nil {
		return m.renderer.Failure(err)
	}

	return m.renderer.Customers(result.Customers, empty)
}

func (m *Menu) displayAllLoans(ctx context.Context) error {
	result, err := m.handlers.OpenLoans.Handle(ctx, openloans.BuildQuery())
	if err != nil {
		return m.renderer.Failure(err)
	}

	return m.renderer.OpenLoans(result.Loans, "No loans found.")
}

func (m *Menu) displayLateLoans(ctx context.Context) error {
	result, err := m.handlers.LateLoans.Handle(ctx, lateloans.BuildQuery())
	if err != nil {
		return m.renderer.Failure(err)
	}

	return m.renderer.LateLoans(result.LateLoans, "No late loans found.")
}

func (m *Menu) findBookByName(ctx context.Context) error {
	name, err := m.prompter.line(bookNameQuestion)
	if err != nil {
		return err
	}

	return m.displayBooks(ctx, name, noBooksWithThatName)
}

func (m *Menu) findCustomerByName(ctx context.Context) error {
	name, err := m.prompter.line(customerNameQuestion)
	if err != nil {
		return err
	}

	return m.displayCustomers(ctx, name, noCustomersWithThatName)
}

// removeBook checks the guard first and asks for confirmation only for a removable book.
func (m *Menu) removeBook(ctx context.Context) error {
	if err := m.displayBooks(ctx, "", noBooksFound); err != nil {
		return err
	}

	bookID, err := m.prompter.id("Enter book ID: ")
	if err != nil {
		return err
	}

	book, err := m.handlers.BookRemovalGuard.CanRemove(ctx, bookID)
	if err != nil {
		return m.renderer.Failure(err)
	}

	confirmed, err := m.prompter.confirm(fmt.Sprintf("Are you sure you want to delete the book '%s'?", book.Title))
	if err != nil {
		return err
	}

	if !confirmed {
		return m.renderer.Notice("Book deletion cancelled.")
	}

	_, err = m.handlers.RemoveBook.Handle(ctx, removebook.BuildCommand(bookID, m.occurredAt()))

	return m.outcome(err, "Book removed successfully.")
}

func (m *Menu) removeCustomer(ctx context.Context) error {
	if err := m.displayCustomers(ctx, "", noCustomersFound); err != nil {
		return err
	}

	customerID, err := m.prompter.id("Enter customer ID: ")
	if err != nil {
		return err
	}

	customer, err := m.handlers.CustomerRemovalGuard.CanRemove(ctx, customerID)
	if err != nil {
		return m.renderer.Failure(err)
	}

	confirmed, err := m.prompter.confirm(fmt.Sprintf("Are you sure you want to delete the customer '%s'?", customer.Name))
	if err != nil {
		return err
	}

	if !confirmed {
		return m.renderer.Notice("Customer deletion cancelled.")
	}

	_, err = m.handlers.RemoveCustomer.Handle(ctx, removecustomer.BuildCommand(customerID, m.occurredAt()))

	return m.outcome(err, "Customer removed successfully.")
}

package menu_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	"github.com/AntonStoeckl/library-records/menu"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell/validation"
	"github.com/AntonStoeckl/library-records/testutil/recordstore/memstore"
)

var dayD = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

func handlersFor(t *testing.T, store *memstore.Store) menu.Handlers {
	t.Helper()

	validator, err := validation.New()
	require.NoError(t, err)

	removeBook := removebook.NewCommandHandler(store)
	removeCustomer := removecustomer.NewCommandHandler(store)

	return menu.Handlers{
		AddBook:              addbook.NewCommandHandler(store, validator),
		RegisterCustomer:     registercustomer.NewCommandHandler(store, validator),
		LendBook:             lendbook.NewCommandHandler(store),
		ReturnBook:           returnbook.NewCommandHandler(store),
		RemoveBook:           removeBook,
		RemoveCustomer:       removeCustomer,
		BookRemovalGuard:     removeBook,
		CustomerRemovalGuard: removeCustomer,
		Books:                books.NewQueryHandler(store),
		Customers:            customers.NewQueryHandler(store),
		OpenLoans:            openloans.NewQueryHandler(store),
		LateLoans:            lateloans.NewQueryHandler(store),
	}
}

func runMenu(t *testing.T, store *memstore.Store, input string, opts ...menu.Option) string {
	t.Helper()

	var out bytes.Buffer

	opts = append([]menu.Option{menu.WithClock(func() time.Time { return dayD })}, opts...)
	m, err := menu.New(strings.NewReader(input), &out, handlersFor(t, store), opts...)
	require.NoError(t, err)

	require.NoError(t, m.Run(context.Background()))

	return out.String()
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func givenLoanDueOn(store *memstore.Store, customerID, bookID int64, loanedOn, dueOn time.Time) {
	store.GivenLoan(recordstore.StorableLoan{
		CustomerID: customerID,
		BookID:     bookID,
		LoanedOn:   loanedOn,
		DueDate:    &dueOn,
	})
}

func Test_Menu_Run_ExitEndsSession(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("EXIT"))

	// assert
	assert.Contains(t, output, "Choose 1-Admin, 2-Customer, or type 'exit' to exit: ")
}

func Test_Menu_Run_EndOfInputIsRegularExit(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, "")

	// assert
	assert.Equal(t, "Choose 1-Admin, 2-Customer, or type 'exit' to exit: ", output)
}

func Test_Menu_Run_CanceledContext(t *testing.T) {
	// arrange
	m, err := menu.New(strings.NewReader(lines("exit")), &bytes.Buffer{}, handlersFor(t, memstore.New()))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	err = m.Run(ctx)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Menu_Run_InvalidRoleIsReprompted(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("3", "exit"))

	// assert
	assert.Contains(t, output, "Invalid choice. Please enter '1', '2', or 'exit'.")
}

func Test_Menu_Admin_ListsActions(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("1", "0", "exit"))

	// assert
	assert.Contains(t, output, "1. Add Customer\n")
	assert.Contains(t, output, "5. Display All Loans\n")
	assert.Contains(t, output, "10. Remove Customer\n")
	assert.Contains(t, output, "Choose an action (or type 0 to go back): ")
}

func Test_Menu_Admin_UnknownActionIsReprompted(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("1", "11", "0", "exit"))

	// assert
	assert.Contains(t, output, "Invalid choice. Please try again.")
}

func Test_Menu_Admin_AddBook(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("1", "2", "Dune", "Frank Herbert", "1965", "2", "0", "exit"))

	// assert
	assert.Contains(t, output, "Enter loan type (1 for 2 days, 2 for 5 days, 3 for 10 days, 4 for 5 minutes): ")
	assert.Contains(t, output, "Book added successfully with ID 1.")

	book, found := store.Book(1)
	require.True(t, found)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, int(core.LoanTypeFiveDays), book.LoanType)
	assert.Equal(t, recordstore.BookStatusAvailable, book.Status)
}

func Test_Menu_Admin_AddBook_NonNumericInputIsReprompted(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("1", "2", "Dune", "Frank Herbert", "nineteen", "1965", "2", "0", "exit"))

	// assert
	assert.Contains(t, output, "Please enter a whole number.")
	assert.Contains(t, output, "Book added successfully with ID 1.")
}

func Test_Menu_Admin_AddBook_UnknownLoanType(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("1", "2", "Dune", "Frank Herbert", "1965", "9", "0", "exit"))

	// assert
	assert.Contains(t, output, "Error [invalid_input]: ")
	assert.Contains(t, output, "loan type must be one of 1, 2, 3, 4")
	assert.Equal(t, 0, store.Calls(memstore.OpInsertBook))
}

func Test_Menu_Admin_AddCustomer(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("1", "1", "Jane Doe", "Springfield", "42", "0", "exit"))

	// assert
	assert.Contains(t, output, "Customer added successfully with ID 1.")

	customer, found := store.Customer(1)
	require.True(t, found)
	assert.Equal(t, "Jane Doe", customer.Name)
	assert.Equal(t, 42, customer.Age)
}

func Test_Menu_Admin_DisplayAllLoans(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	customerID := store.GivenCustomer("Jane Doe")
	givenLoanDueOn(store, customerID, bookID, dayD, dayD.AddDate(0, 0, 2))

	// act
	output := runMenu(t, store, lines("1", "5", "0", "exit"))

	// assert
	assert.Contains(t, output,
		"Customer: Jane Doe [1], Book: Dune [1], Loan Date: 2024-03-10, Loan Type: 2 days, Return Date: 2024-03-12")
}

func Test_Menu_Admin_DisplayEmptyLists(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("1", "3", "4", "5", "6", "0", "exit"))

	// assert
	assert.Contains(t, output, "No books found.")
	assert.Contains(t, output, "No customers found.")
	assert.Contains(t, output, "No loans found.")
	assert.Contains(t, output, "No late loans found.")
}

func Test_Menu_Admin_FindBookByName(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	store.GivenBook("Emma", int(core.LoanTypeTwoDays))

	// act
	output := runMenu(t, store, lines("1", "7", "du", "7", "zzz", "0", "exit"))

	// assert
	assert.Contains(t, output, "[1] Dune by Some Author (1999), loan type 2 days, available")
	assert.NotContains(t, output, "Emma by")
	assert.Contains(t, output, "No books found with that name.")
}

func Test_Menu_Admin_FindCustomerByName(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")

	// act
	output := runMenu(t, store, lines("1", "8", "JANE", "0", "exit"))

	// assert
	assert.Contains(t, output, "[1] Jane Doe, Springfield, age 30")
}

func Test_Menu_Admin_RemoveBook_Confirmed(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))

	// act
	output := runMenu(t, store, lines("1", "9", "1", "y", "0", "exit"))

	// assert
	assert.Contains(t, output, "Are you sure you want to delete the book 'Dune'? (y/n): ")
	assert.Contains(t, output, "Book removed successfully.")
	_, found := store.Book(bookID)
	assert.False(t, found)
}

func Test_Menu_Admin_RemoveBook_Declined(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))

	// act
	output := runMenu(t, store, lines("1", "9", "1", "n", "0", "exit"))

	// assert
	assert.Contains(t, output, "Book deletion cancelled.")
	assert.Equal(t, 0, store.Calls(memstore.OpDeleteAvailableBook))
	_, found := store.Book(bookID)
	assert.True(t, found)
}

func Test_Menu_Admin_RemoveBook_LoanedIsRejectedWithoutConfirmation(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	customerID := store.GivenCustomer("Jane Doe")
	givenLoanDueOn(store, customerID, bookID, dayD, dayD.AddDate(0, 0, 2))

	// act
	output := runMenu(t, store, lines("1", "9", "1", "0", "exit"))

	// assert
	assert.Contains(t, output, "Error [invalid_state]: ")
	assert.NotContains(t, output, "Are you sure")
	assert.Equal(t, 0, store.Calls(memstore.OpDeleteAvailableBook))
}

func Test_Menu_Admin_RemoveBook_Unknown(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("1", "9", "42", "0", "exit"))

	// assert
	assert.Contains(t, output, "Error [not_found]: book not found: id 42")
}

func Test_Menu_Admin_RemoveCustomer_WithOpenLoanIsRejected(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	customerID := store.GivenCustomer("Jane Doe")
	givenLoanDueOn(store, customerID, bookID, dayD, dayD.AddDate(0, 0, 2))

	// act
	output := runMenu(t, store, lines("1", "10", "1", "0", "exit"))

	// assert
	assert.Contains(t, output, "Error [invalid_state]: ")
	_, found := store.Customer(customerID)
	assert.True(t, found)
}

func Test_Menu_Admin_RemoveCustomer_Confirmed(t *testing.T) {
	// arrange
	store := memstore.New()
	customerID := store.GivenCustomer("Jane Doe")

	// act
	output := runMenu(t, store, lines("1", "10", "1", "Y", "0", "exit"))

	// assert
	assert.Contains(t, output, "Are you sure you want to delete the customer 'Jane Doe'? (y/n): ")
	assert.Contains(t, output, "Customer removed successfully.")
	_, found := store.Customer(customerID)
	assert.False(t, found)
}

func Test_Menu_Admin_StoreFailureDoesNotEndSession(t *testing.T) {
	// arrange
	store := memstore.New()
	store.FailNext(memstore.OpAllBooks, errors.New("connection reset"))

	// act
	output := runMenu(t, store, lines("1", "3", "3", "0", "exit"))

	// assert
	assert.Contains(t, output, "Error [internal]: connection reset")
	assert.Contains(t, output, "No books found.")
}

func Test_Menu_Customer_NoCustomers(t *testing.T) {
	// arrange
	store := memstore.New()

	// act
	output := runMenu(t, store, lines("2", "exit"))

	// assert
	assert.Contains(t, output, "No customers found.")
	assert.NotContains(t, output, "Enter your customer ID: ")
}

func Test_Menu_Customer_UnknownID(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")

	// act
	output := runMenu(t, store, lines("2", "99", "exit"))

	// assert
	assert.Contains(t, output, "Error [not_found]: customer not found: id 99")
	assert.NotContains(t, output, "Welcome")
}

func Test_Menu_Customer_LoginSeesCustomerMissingFromListing(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")
	store.BeforeNext(memstore.OpFindCustomerByID, func(s *memstore.Store) {
		s.GivenCustomer("John Roe")
	})

	// act
	output := runMenu(t, store, lines("2", "2", "0", "exit"))

	// assert
	assert.Contains(t, output, "Welcome, John Roe.")
	assert.NotContains(t, output, "Error [not_found]")
	assert.Equal(t, recordstore.StrongConsistency, store.ConsistencyOf(memstore.OpFindCustomerByID))
}

func Test_Menu_Customer_LoanBook(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")
	store.GivenBook("Dune", int(core.LoanTypeTwoDays))

	// act
	output := runMenu(t, store, lines("2", "1", "1", "1", "0", "exit"))

	// assert
	assert.Contains(t, output, "Welcome, Jane Doe.")
	assert.Contains(t, output, "Book 'Dune' should be returned by 2024-03-12.")
	_, found := store.Loan(1, 1)
	assert.True(t, found)
}

func Test_Menu_Customer_LoanBook_FiveMinutes(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")
	store.GivenBook("Dune", int(core.LoanTypeFiveMinutes))

	// act
	output := runMenu(t, store, lines("2", "1", "1", "1", "0", "exit"))

	// assert
	dueBy := core.DueBy(dayD.Add(5 * time.Minute))
	assert.Contains(t, output, "Book 'Dune' should be returned by "+dueBy.String()+".")
}

func Test_Menu_Customer_LoanBook_AlreadyLoaned(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")
	otherID := store.GivenCustomer("John Roe")
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	givenLoanDueOn(store, otherID, bookID, dayD, dayD.AddDate(0, 0, 2))

	// act
	output := runMenu(t, store, lines("2", "1", "1", "1", "0", "exit"))

	// assert
	assert.Contains(t, output, "Error [invalid_state]: invalid state: book is already loaned")
	_, found := store.Loan(1, bookID)
	assert.False(t, found)
}

func Test_Menu_Customer_ReturnBook_NothingBorrowed(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")

	// act
	output := runMenu(t, store, lines("2", "1", "2", "0", "exit"))

	// assert
	assert.Contains(t, output, "You have no borrowed books.")
}

func Test_Menu_Customer_ReturnBook_OnTime(t *testing.T) {
	// arrange
	store := memstore.New()
	customerID := store.GivenCustomer("Jane Doe")
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	givenLoanDueOn(store, customerID, bookID, dayD, dayD.AddDate(0, 0, 2))

	// act
	output := runMenu(t, store, lines("2", "1", "2", "1", "0", "exit"))

	// assert
	assert.Contains(t, output, "Customer: Jane Doe [1], Book: Dune [1]")
	assert.Contains(t, output, "The book was returned on time.")
	assert.Empty(t, store.LateLoanRecords())
}

func Test_Menu_Customer_ReturnBook_Late(t *testing.T) {
	// arrange
	store := memstore.New()
	customerID := store.GivenCustomer("Jane Doe")
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	givenLoanDueOn(store, customerID, bookID, dayD.AddDate(0, 0, -4), dayD.AddDate(0, 0, -2))

	// act
	output := runMenu(t, store, lines("2", "1", "2", "1", "0", "exit"))

	// assert
	assert.Contains(t, output, "The book 'Dune' was returned late.")
	require.Len(t, store.LateLoanRecords(), 1)
	book, _ := store.Book(bookID)
	assert.Equal(t, recordstore.BookStatusAvailable, book.Status)
}

func Test_Menu_Customer_ReturnBook_NotBorrowedByCustomer(t *testing.T) {
	// arrange
	store := memstore.New()
	customerID := store.GivenCustomer("Jane Doe")
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	store.GivenBook("Emma", int(core.LoanTypeTwoDays))
	givenLoanDueOn(store, customerID, bookID, dayD, dayD.AddDate(0, 0, 2))

	// act
	output := runMenu(t, store, lines("2", "1", "2", "2", "0", "exit"))

	// assert
	assert.Contains(t, output, "Error [not_found]: loan not found")
}

func Test_Menu_JSONOutput(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	var out bytes.Buffer
	renderer, err := menu.NewRenderer(menu.OutputJSON, &out)
	require.NoError(t, err)
	m, err := menu.New(
		strings.NewReader(lines("1", "3", "9", "7", "0", "exit")),
		&out,
		handlersFor(t, store),
		menu.WithRenderer(renderer),
	)
	require.NoError(t, err)

	// act
	err = m.Run(context.Background())

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(),
		`{"books":[{"id":1,"title":"Dune","author":"Some Author","year_published":1999,"loan_type":1,"loan_duration":"2 days","status":"available"}]}`)
	assert.Contains(t, out.String(), `{"status":"error","kind":"not_found","message":"book not found: id 7"}`)
}

func Test_New_MissingHandler(t *testing.T) {
	// arrange
	handlers := handlersFor(t, memstore.New())
	handlers.LateLoans = nil

	// act
	_, err := menu.New(strings.NewReader(""), &bytes.Buffer{}, handlers)

	// assert
	assert.ErrorIs(t, err, menu.ErrMissingHandler)
}

func Test_NewRenderer_UnknownFormat(t *testing.T) {
	// act
	_, err := menu.NewRenderer("yaml", &bytes.Buffer{})

	// assert
	assert.Error(t, err)
}

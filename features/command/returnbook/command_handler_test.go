package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/lendbook"
	"github.com/AntonStoeckl/library-records/features/command/returnbook"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
	"github.com/AntonStoeckl/library-records/testutil/recordstore/memstore"
)

func Test_CommandHandler_Handle_OnTime(t *testing.T) {
	// arrange
	store, customerID, bookID := givenLentBook(t, core.LoanTypeFiveMinutes, dayD)
	handler := returnbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand(customerID, bookID, dayD.Add(time.Minute)))

	// assert
	require.NoError(t, err)
	assert.True(t, result.OnTime)
	assert.Nil(t, result.LateLoan)
	assertBookReturned(t, store, customerID, bookID)
	assert.Empty(t, store.LateLoanRecords(), "an on-time return must not create a late loan")
}

func Test_CommandHandler_Handle_Late(t *testing.T) {
	// arrange
	store, customerID, bookID := givenLentBook(t, core.LoanTypeTwoDays, dayD)
	lateLoanID := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	handler := returnbook.NewCommandHandler(store, returnbook.WithIDGenerator(func() uuid.UUID { return lateLoanID }))
	returnedAt := dayD.AddDate(0, 0, 3)

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand(customerID, bookID, returnedAt))

	// assert
	require.NoError(t, err)
	assert.False(t, result.OnTime)
	require.NotNil(t, result.LateLoan)
	assertBookReturned(t, store, customerID, bookID)

	records := store.LateLoanRecords()
	require.Len(t, records, 1, "a late return creates exactly one late loan")
	assert.Equal(t, lateLoanID, records[0].ID)
	assert.Equal(t, "Jane Doe", records[0].CustomerName)
	assert.Equal(t, "Dune", records[0].BookName)
	require.NotNil(t, records[0].ExpectedDueDate)
	assert.Equal(t, "2024-03-12", core.FormatCalendarDate(*records[0].ExpectedDueDate))
	assert.Nil(t, records[0].ExpectedDueAt)
	assert.Equal(t, returnedAt, records[0].ReturnedAt)
}

func Test_CommandHandler_Handle_LoanNotFound_NoStateChange(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	customerID := store.GivenCustomer("Jane Doe")
	handler := returnbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), returnbook.BuildCommand(customerID, bookID, dayD))

	// assert
	assert.ErrorIs(t, err, core.ErrLoanNotFound)
	assert.Equal(t, 0, store.Calls(memstore.OpReturnBook))
	book, _ := store.Book(bookID)
	assert.Equal(t, recordstore.BookStatusAvailable, book.Status)
}

func Test_CommandHandler_Handle_ReturnedTwice(t *testing.T) {
	// arrange
	store, customerID, bookID := givenLentBook(t, core.LoanTypeTenDays, dayD)
	handler := returnbook.NewCommandHandler(store)
	command := returnbook.BuildCommand(customerID, bookID, dayD.Add(time.Hour))

	_, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrLoanNotFound)
}

func Test_CommandHandler_Handle_LoanClosedConcurrently_RetriesAndRejects(t *testing.T) {
	// arrange
	store, customerID, bookID := givenLentBook(t, core.LoanTypeTenDays, dayD)
	store.FailNext(memstore.OpReturnBook, recordstore.ErrConcurrencyConflict)

	handler := returnbook.NewCommandHandler(store, returnbook.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	// act
	result, err := handler.Handle(context.Background(), returnbook.BuildCommand(customerID, bookID, dayD.Add(time.Hour)))

	// assert
	require.NoError(t, err, "the loan is still open, so the retried return succeeds")
	assert.Equal(t, 2, result.RetryAttempts)
	assert.Equal(t, "none", result.LastErrorType)
	assertBookReturned(t, store, customerID, bookID)
}

func givenLentBook(t *testing.T, loanType core.LoanType, loanedAt time.Time) (*memstore.Store, core.CustomerID, core.BookID) {
	t.Helper()

	store := memstore.New()
	bookID := store.GivenBook("Dune", int(loanType))
	customerID := store.GivenCustomer("Jane Doe")

	_, err := lendbook.NewCommandHandler(store).Handle(context.Background(), lendbook.BuildCommand(customerID, bookID, loanedAt))
	require.NoError(t, err)

	return store, customerID, bookID
}

func assertBookReturned(t *testing.T, store *memstore.Store, customerID core.CustomerID, bookID core.BookID) {
	t.Helper()

	_, loanExists := store.Loan(customerID, bookID)
	assert.False(t, loanExists, "no open loan may remain after a return")

	book, _ := store.Book(bookID)
	assert.Equal(t, recordstore.BookStatusAvailable, book.Status)
}

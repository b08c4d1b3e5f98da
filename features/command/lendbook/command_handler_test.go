package lendbook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/lendbook"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
	"github.com/AntonStoeckl/library-records/testutil/recordstore/memstore"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Learning Domain-Driven Design", int(core.LoanTypeTwoDays))
	customerID := store.GivenCustomer("Jane Doe")
	handler := lendbook.NewCommandHandler(store)
	loanedAt := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	// act
	result, err := handler.Handle(context.Background(), lendbook.BuildCommand(customerID, bookID, loanedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", result.DueAt.String())
	assert.Equal(t, "Learning Domain-Driven Design", result.BookTitle)
	assert.Equal(t, 1, result.RetryAttempts)

	loan, found := store.Loan(customerID, bookID)
	require.True(t, found, "loan should be stored")
	require.NotNil(t, loan.DueDate)
	assert.Nil(t, loan.DueAt)

	book, _ := store.Book(bookID)
	assert.Equal(t, recordstore.BookStatusLoaned, book.Status)
}

func Test_CommandHandler_Handle_SecondBorrowByAnotherCustomer_IsRejected(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeFiveDays))
	firstCustomer := store.GivenCustomer("Jane Doe")
	secondCustomer := store.GivenCustomer("John Roe")
	handler := lendbook.NewCommandHandler(store)
	now := time.Now()

	_, err := handler.Handle(context.Background(), lendbook.BuildCommand(firstCustomer, bookID, now))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(context.Background(), lendbook.BuildCommand(secondCustomer, bookID, now.Add(time.Minute)))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyLoaned)
	_, found := store.Loan(secondCustomer, bookID)
	assert.False(t, found, "a rejected borrow must not create a loan")
	_, stillLoaned := store.Loan(firstCustomer, bookID)
	assert.True(t, stillLoaned)
}

func Test_CommandHandler_Handle_NotFound(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeFiveDays))
	customerID := store.GivenCustomer("Jane Doe")
	handler := lendbook.NewCommandHandler(store)

	// act
	_, bookErr := handler.Handle(context.Background(), lendbook.BuildCommand(customerID, 999, time.Now()))
	_, customerErr := handler.Handle(context.Background(), lendbook.BuildCommand(999, bookID, time.Now()))

	// assert
	assert.ErrorIs(t, bookErr, core.ErrBookNotFound)
	assert.ErrorIs(t, customerErr, core.ErrCustomerNotFound)
	assert.Equal(t, 0, store.Calls(memstore.OpLendBook), "nothing must be written")
}

func Test_CommandHandler_Handle_BookTakenConcurrently_RetriesAndRejects(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeFiveDays))
	customerID := store.GivenCustomer("Jane Doe")
	rivalID := store.GivenCustomer("John Roe")
	now := time.Now()

	store.BeforeNext(memstore.OpLendBook, func(s *memstore.Store) {
		s.PutLoan(recordstore.StorableLoan{CustomerID: rivalID, BookID: bookID, LoanedOn: now, DueDate: &now})
	})

	handler := lendbook.NewCommandHandler(store, lendbook.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	// act
	result, err := handler.Handle(context.Background(), lendbook.BuildCommand(customerID, bookID, now))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyLoaned)
	assert.Equal(t, 2, result.RetryAttempts, "the conflict should be retried once, then rejected")
	assert.Equal(t, 1, store.Calls(memstore.OpLendBook))
}

func Test_CommandHandler_Handle_StoreFailure_IsNotRetried(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeFiveDays))
	customerID := store.GivenCustomer("Jane Doe")
	dbErr := errors.New("connection reset")
	store.FailNext(memstore.OpLendBook, dbErr)
	handler := lendbook.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), lendbook.BuildCommand(customerID, bookID, time.Now()))

	// assert
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, core.KindInternal, core.KindOf(err))
	assert.Equal(t, 1, result.RetryAttempts)
}

func Test_CommandHandler_Handle_CustomerRemovedBeforeWrite(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeFiveDays))
	customerID := store.GivenCustomer("Jane Doe")
	store.FailNext(memstore.OpLendBook, recordstore.ErrReferencedRecordMissing)
	handler := lendbook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), lendbook.BuildCommand(customerID, bookID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrCustomerNotFound)
	assert.Equal(t, core.KindNotFound, core.KindOf(err))
}

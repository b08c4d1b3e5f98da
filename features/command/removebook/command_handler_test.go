package removebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/removebook"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
	"github.com/AntonStoeckl/library-records/testutil/recordstore/memstore"
)

func Test_CommandHandler_CanRemove(t *testing.T) {
	// arrange
	store := memstore.New()
	availableID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	loanedID := store.GivenBook("Emma", int(core.LoanTypeTwoDays))
	customerID := store.GivenCustomer("Jane Doe")
	givenLoan(store, customerID, loanedID)
	handler := removebook.NewCommandHandler(store)

	// act
	available, availableErr := handler.CanRemove(context.Background(), availableID)
	loaned, loanedErr := handler.CanRemove(context.Background(), loanedID)
	_, missingErr := handler.CanRemove(context.Background(), 999)

	// assert
	assert.NoError(t, availableErr)
	assert.Equal(t, "Dune", available.Title)
	assert.ErrorIs(t, loanedErr, core.ErrBookCurrentlyLoaned)
	assert.Equal(t, "Emma", loaned.Title)
	assert.ErrorIs(t, missingErr, core.ErrBookNotFound)
	assert.Equal(t, 0, store.Calls(memstore.OpDeleteAvailableBook), "the guard must not write")
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	handler := removebook.NewCommandHandler(store)
	removedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	// act
	result, err := handler.Handle(context.Background(), removebook.BuildCommand(bookID, removedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Dune", result.Book.Title)
	assert.Equal(t, core.BuildBookRemovedFromCatalog(bookID, "Dune", removedAt), result.Removed)
	_, exists := store.Book(bookID)
	assert.False(t, exists)
}

func Test_CommandHandler_Handle_LoanedBook_IsRejected(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	givenLoan(store, store.GivenCustomer("Jane Doe"), bookID)
	handler := removebook.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), removebook.BuildCommand(bookID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrBookCurrentlyLoaned)
	_, exists := store.Book(bookID)
	assert.True(t, exists)
}

func Test_CommandHandler_Handle_LentAfterConfirmation_IsRejected(t *testing.T) {
	// arrange
	store := memstore.New()
	bookID := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	customerID := store.GivenCustomer("Jane Doe")
	store.BeforeNext(memstore.OpDeleteAvailableBook, func(s *memstore.Store) {
		due := time.Now()
		s.PutLoan(recordstore.StorableLoan{CustomerID: customerID, BookID: bookID, LoanedOn: due, DueDate: &due})
	})
	handler := removebook.NewCommandHandler(store, removebook.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	// act
	result, err := handler.Handle(context.Background(), removebook.BuildCommand(bookID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrBookCurrentlyLoaned)
	assert.Equal(t, 2, result.RetryAttempts)
	_, exists := store.Book(bookID)
	assert.True(t, exists)
}

func givenLoan(store *memstore.Store, customerID core.CustomerID, bookID core.BookID) {
	due := time.Now().AddDate(0, 0, 2)
	store.GivenLoan(recordstore.StorableLoan{CustomerID: customerID, BookID: bookID, LoanedOn: time.Now(), DueDate: &due})
}

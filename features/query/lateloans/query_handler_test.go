package lateloans_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/features/command/lendbook"
	"github.com/AntonStoeckl/library-records/features/command/returnbook"
	"github.com/AntonStoeckl/library-records/features/query/lateloans"
	"github.com/AntonStoeckl/library-records/testutil/recordstore/memstore"
)

func Test_QueryHandler_Handle_ListsOnlyLateReturns(t *testing.T) {
	// arrange
	store := memstore.New()
	jane := store.GivenCustomer("Jane Doe")
	dune := store.GivenBook("Dune", int(core.LoanTypeTwoDays))
	emma := store.GivenBook("Emma", int(core.LoanTypeFiveMinutes))
	loanedAt := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

	lend := lendbook.NewCommandHandler(store)
	giveBack := returnbook.NewCommandHandler(store)

	for _, bookID := range []core.BookID{dune, emma} {
		_, err := lend.Handle(context.Background(), lendbook.BuildCommand(jane, bookID, loanedAt))
		require.NoError(t, err)
	}

	_, err := giveBack.Handle(context.Background(), returnbook.BuildCommand(jane, dune, loanedAt.AddDate(0, 0, 3)))
	require.NoError(t, err)
	_, err = giveBack.Handle(context.Background(), returnbook.BuildCommand(jane, emma, loanedAt.Add(time.Minute)))
	require.NoError(t, err)

	// act
	result, err := lateloans.NewQueryHandler(store).Handle(context.Background(), lateloans.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "Dune", result.LateLoans[0].BookName)
	assert.Equal(t, "Jane Doe", result.LateLoans[0].CustomerName)
	assert.Equal(t, "2024-03-12", result.LateLoans[0].ExpectedReturn.String())
}

func Test_QueryHandler_Handle_EmptyTrail(t *testing.T) {
	// act
	result, err := lateloans.NewQueryHandler(memstore.New()).Handle(context.Background(), lateloans.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
}

package customers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/features/query/customers"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/testutil/recordstore/memstore"
)

func Test_QueryHandler_Handle_AllCustomers(t *testing.T) {
	// arrange
	store := memstore.New()
	janeID := store.GivenCustomer("Jane Doe")
	store.GivenCustomer("John Roe")
	handler := customers.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), customers.BuildQuery(""))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Len())
	assert.True(t, result.Contains(janeID))
	assert.False(t, result.Contains(999))
}

func Test_QueryHandler_Handle_NameSearch(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")
	store.GivenCustomer("John Roe")
	handler := customers.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), customers.BuildQuery("doe"))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "Jane Doe", result.Customers[0].Name)
}

func Test_QueryHandler_Handle_StoreFailure(t *testing.T) {
	// arrange
	store := memstore.New()
	dbErr := errors.New("timeout")
	store.FailNext(memstore.OpAllCustomers, dbErr)
	handler := customers.NewQueryHandler(store)

	// act
	_, err := handler.Handle(context.Background(), customers.BuildQuery(""))

	// assert
	assert.ErrorIs(t, err, dbErr)
}

func Test_QueryHandler_Handle_ListingsReadWithEventualConsistency(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("Jane Doe")
	handler := customers.NewQueryHandler(store)

	// act
	_, err := handler.Handle(context.Background(), customers.BuildQuery(""))

	// assert
	require.NoError(t, err)
	assert.Equal(t, recordstore.EventualConsistency, store.ConsistencyOf(memstore.OpAllCustomers))
}

func Test_QueryHandler_Handle_LookupByID_ReadsFromPrimary(t *testing.T) {
	// arrange
	store := memstore.New()
	store.GivenCustomer("John Roe")
	janeID := store.GivenCustomer("Jane Doe")
	handler := customers.NewQueryHandler(store)

	// act
	result, err := handler.Handle(
		recordstore.WithEventualConsistency(context.Background()),
		customers.BuildQueryForCustomer(janeID),
	)

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "Jane Doe", result.Customers[0].Name)
	assert.Equal(t, recordstore.StrongConsistency, store.ConsistencyOf(memstore.OpFindCustomerByID))
	assert.Equal(t, 0, store.Calls(memstore.OpAllCustomers))
}

func Test_QueryHandler_Handle_LookupByID_UnknownCustomer_IsEmpty(t *testing.T) {
	// arrange
	store := memstore.New()
	handler := customers.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), customers.BuildQueryForCustomer(99))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
	assert.False(t, result.Contains(99))
}

func Test_QueryHandler_Handle_LookupByID_StoreFailure(t *testing.T) {
	// arrange
	store := memstore.New()
	dbErr := errors.New("connection reset")
	store.FailNext(memstore.OpFindCustomerByID, dbErr)
	handler := customers.NewQueryHandler(store)

	// act
	_, err := handler.Handle(context.Background(), customers.BuildQueryForCustomer(1))

	// assert
	assert.ErrorIs(t, err, dbErr)
}

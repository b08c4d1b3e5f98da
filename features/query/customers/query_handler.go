package customers

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the QueryHandler.
type RecordStore interface {
	AllCustomers(ctx context.Context) ([]recordstore.StorableCustomer, error)
	FindCustomersByName(ctx context.Context, term string) ([]recordstore.StorableCustomer, error)
	FindCustomerByID(ctx context.Context, id int64) (recordstore.StorableCustomer, error)
}

// QueryHandler reads customers. Listings may be served by a replica, single lookups never are.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle lists all customers or the customers whose name contains the search term, ignoring case.
// A lookup by id returns an empty result for an unknown customer.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Customers, error) {
	if query.CustomerID != 0 {
		return h.lookup(recordstore.WithStrongConsistency(ctx), query.CustomerID)
	}

	ctx = recordstore.WithEventualConsistency(ctx)

	var (
		storableCustomers []recordstore.StorableCustomer
		err               error
	)

	if query.NameContains == "" {
		storableCustomers, err = h.store.AllCustomers(ctx)
	} else {
		storableCustomers, err = h.store.FindCustomersByName(ctx, query.NameContains)
	}

	if err != nil {
		return Customers{}, err
	}

	customers := shell.CustomersFrom(storableCustomers)

	return Customers{Customers: customers, Count: len(customers)}, nil
}

func (h QueryHandler) lookup(ctx context.Context, customerID core.CustomerID) (Customers, error) {
	storableCustomer, err := h.store.FindCustomerByID(ctx, customerID)
	if errors.Is(err, recordstore.ErrRecordNotFound) {
		return Customers{}, nil
	}

	if err != nil {
		return Customers{}, err
	}

	return Customers{Customers: []core.Customer{shell.CustomerFrom(storableCustomer)}, Count: 1}, nil
}

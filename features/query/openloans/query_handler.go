package openloans

import (
	"context"

	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the QueryHandler.
type RecordStore interface {
	OpenLoans(ctx context.Context) ([]recordstore.StorableOpenLoan, error)
	OpenLoansOfCustomer(ctx context.Context, customerID int64) ([]recordstore.StorableOpenLoan, error)
}

// QueryHandler reads open loans. Reads may be served by a replica.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle lists all open loans, or those of query.CustomerID when it is set.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OpenLoans, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	var (
		storableLoans []recordstore.StorableOpenLoan
		err           error
	)

	if query.CustomerID == 0 {
		storableLoans, err = h.store.OpenLoans(ctx)
	} else {
		storableLoans, err = h.store.OpenLoansOfCustomer(ctx, query.CustomerID)
	}

	if err != nil {
		return OpenLoans{}, err
	}

	loans, err := shell.OpenLoanDetailsFrom(storableLoans)
	if err != nil {
		return OpenLoans{}, err
	}

	return OpenLoans{CustomerID: query.CustomerID, Loans: loans, Count: len(loans)}, nil
}

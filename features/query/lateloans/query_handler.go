package lateloans

import (
	"context"

	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the QueryHandler.
type RecordStore interface {
	LateLoans(ctx context.Context) ([]recordstore.StorableLateLoan, error)
}

// QueryHandler reads the late-loan audit trail. Reads may be served by a replica.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle lists all late-loan records.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (LateLoans, error) {
	storableLateLoans, err := h.store.LateLoans(recordstore.WithEventualConsistency(ctx))
	if err != nil {
		return LateLoans{}, err
	}

	lateLoans, err := shell.LateLoansFrom(storableLateLoans)
	if err != nil {
		return LateLoans{}, err
	}

	return LateLoans{LateLoans: lateLoans, Count: len(lateLoans)}, nil
}

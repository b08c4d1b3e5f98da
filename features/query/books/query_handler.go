package books

import (
	"context"

	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/shell"
)

// RecordStore defines the store operations needed by the QueryHandler.
type RecordStore interface {
	AllBooks(ctx context.Context) ([]recordstore.StorableBook, error)
	FindBooksByTitle(ctx context.Context, term string) ([]recordstore.StorableBook, error)
}

// QueryHandler reads books. Reads may be served by a replica.
type QueryHandler struct {
	store RecordStore
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

// Handle lists all books or the books whose title contains the search term, ignoring case.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Books, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	var (
		storableBooks []recordstore.StorableBook
		err           error
	)

	if query.TitleContains == "" {
		storableBooks, err = h.store.AllBooks(ctx)
	} else {
		storableBooks, err = h.store.FindBooksByTitle(ctx, query.TitleContains)
	}

	if err != nil {
		return Books{}, err
	}

	books := shell.BooksFrom(storableBooks)

	return Books{Books: books, Count: len(books)}, nil
}

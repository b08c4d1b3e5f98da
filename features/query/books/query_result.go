package books

import (
	"github.com/AntonStoeckl/library-records/core"
)

// Books represents the query result, ordered by book id.
type Books struct {
	Books []core.Book
	Count int
}

// Len returns the number of books found.
func (r Books) Len() int {
	return r.Count
}

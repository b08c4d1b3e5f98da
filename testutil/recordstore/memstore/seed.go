package memstore

import (
	"github.com/AntonStoeckl/library-records/recordstore"
)

// GivenBook seeds an available book and returns its id.
func (s *Store) GivenBook(title string, loanType int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.PutBook(recordstore.StorableBook{
		Title:         title,
		Author:        "Some Author",
		YearPublished: 1999,
		LoanType:      loanType,
		Status:        recordstore.BookStatusAvailable,
	})
}

// GivenCustomer seeds a customer and returns their id.
func (s *Store) GivenCustomer(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.PutCustomer(recordstore.StorableCustomer{
		Name: name,
		City: "Springfield",
		Age:  30,
	})
}

// GivenLoan seeds an open loan and marks the book loaned.
func (s *Store) GivenLoan(loan recordstore.StorableLoan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.PutLoan(loan)
}

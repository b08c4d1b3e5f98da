package core

// BookStatus is derived from loans: a book is loaned iff an open Loan references it.
type BookStatus string

const (
	BookAvailable BookStatus = "available"
	BookLoaned    BookStatus = "loaned"
)

// Book is a catalog entry.
type Book struct {
	ID            BookID
	Title         string
	Author        string
	YearPublished int
	LoanType      LoanType
	Status        BookStatus
}

// IsLoaned reports whether the book is currently out.
func (b Book) IsLoaned() bool {
	return b.Status == BookLoaned
}

package recordstore

import (
	"time"

	"github.com/google/uuid"
)

// StorableBook is a DTO used by the RecordStore to insert books and read them back.
//
// It is built on scalars so the store stays agnostic of the domain types in the client code.
type StorableBook struct {
	ID            int64
	Title         string
	Author        string
	YearPublished int
	LoanType      int
	Status        string
}

// StorableCustomer is a DTO used by the RecordStore to insert customers and read them back.
type StorableCustomer struct {
	ID   int64
	Name string
	City string
	Age  int
}

// StorableLoan is a DTO for an open loan.
//
// Exactly one of DueDate and DueAt is set. While its properties are exported,
// it should only be constructed with BuildStorableLoan.
type StorableLoan struct {
	CustomerID int64
	BookID     int64
	LoanedOn   time.Time
	DueDate    *time.Time
	DueAt      *time.Time
}

// StorableOpenLoan is a StorableLoan joined with customer and book details.
type StorableOpenLoan struct {
	StorableLoan
	CustomerName string
	BookTitle    string
	LoanType     int
}

// StorableLateLoan is a DTO for the audit record of a late return.
//
// Exactly one of ExpectedDueDate and ExpectedDueAt is set. While its properties are exported,
// it should only be constructed with BuildStorableLateLoan.
type StorableLateLoan struct {
	ID              uuid.UUID
	CustomerID      int64
	CustomerName    string
	BookID          int64
	BookName        string
	ExpectedDueDate *time.Time
	ExpectedDueAt   *time.Time
	ReturnedAt      time.Time
}

// BuildStorableLoan is a factory method for StorableLoan.
// Returns ErrInvalidDueColumns unless exactly one of dueDate and dueAt is given.
func BuildStorableLoan(
	customerID int64,
	bookID int64,
	loanedOn time.Time,
	dueDate *time.Time,
	dueAt *time.Time,
) (StorableLoan, error) {

	if !exactlyOne(dueDate, dueAt) {
		return StorableLoan{}, ErrInvalidDueColumns
	}

	return StorableLoan{
		CustomerID: customerID,
		BookID:     bookID,
		LoanedOn:   loanedOn,
		DueDate:    dueDate,
		DueAt:      dueAt,
	}, nil
}

// BuildStorableLateLoan is a factory method for StorableLateLoan.
// Returns ErrInvalidDueColumns unless exactly one of expectedDueDate and expectedDueAt is given.
func BuildStorableLateLoan(
	id uuid.UUID,
	customerID int64,
	customerName string,
	bookID int64,
	bookName string,
	expectedDueDate *time.Time,
	expectedDueAt *time.Time,
	returnedAt time.Time,
) (StorableLateLoan, error) {

	if !exactlyOne(expectedDueDate, expectedDueAt) {
		return StorableLateLoan{}, ErrInvalidDueColumns
	}

	return StorableLateLoan{
		ID:              id,
		CustomerID:      customerID,
		CustomerName:    customerName,
		BookID:          bookID,
		BookName:        bookName,
		ExpectedDueDate: expectedDueDate,
		ExpectedDueAt:   expectedDueAt,
		ReturnedAt:      returnedAt,
	}, nil
}

func exactlyOne(a, b *time.Time) bool {
	return (a == nil) != (b == nil)
}

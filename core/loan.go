package core

import (
	"time"

	"github.com/google/uuid"
)

// Loan is an open loan of one book to one customer. It is deleted on return.
type Loan struct {
	CustomerID CustomerID
	BookID     BookID
	LoanedOn   time.Time // calendar date, midnight UTC
	DueAt      DueAt
}

// OpenLoanDetails is a Loan joined with the names an operator wants to see.
type OpenLoanDetails struct {
	Loan
	CustomerName string
	BookTitle    string
	LoanType     LoanType
}

// LateLoan is the immutable record of a return after the due point.
type LateLoan struct {
	ID             uuid.UUID
	CustomerID     CustomerID
	CustomerName   string
	BookID         BookID
	BookName       string
	ExpectedReturn DueAt
	ActualReturn   time.Time
}

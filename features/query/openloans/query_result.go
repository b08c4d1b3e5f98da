package openloans

import (
	"time"

	"github.com/AntonStoeckl/library-records/core"
)

// OpenLoans represents the query result, ordered by loan date and book id.
type OpenLoans struct {
	CustomerID core.CustomerID
	Loans      []core.OpenLoanDetails
	Count      int
}

// Len returns the number of open loans found.
func (r OpenLoans) Len() int {
	return r.Count
}

// Overdue returns the loans whose due point lies before at.
func (r OpenLoans) Overdue(at time.Time) []core.OpenLoanDetails {
	overdue := make([]core.OpenLoanDetails, 0)

	for _, loan := range r.Loans {
		if loan.DueAt.IsOverdueAt(at) {
			overdue = append(overdue, loan)
		}
	}

	return overdue
}

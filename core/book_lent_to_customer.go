package core

import (
	"time"
)

// BookLentToCustomerEventType is the event type identifier.
const BookLentToCustomerEventType = "BookLentToCustomer"

// BookLentToCustomer represents a successful borrow.
type BookLentToCustomer struct {
	CustomerID CustomerID
	BookID     BookID
	LoanedOn   time.Time
	DueAt      DueAt
	OccurredAt OccurredAt
}

// BuildBookLentToCustomer creates a new BookLentToCustomer event.
// The loan date is the calendar day of occurredAt.
func BuildBookLentToCustomer(
	customerID CustomerID,
	bookID BookID,
	dueAt DueAt,
	occurredAt time.Time,
) BookLentToCustomer {

	return BookLentToCustomer{
		CustomerID: customerID,
		BookID:     bookID,
		LoanedOn:   ToCalendarDate(occurredAt),
		DueAt:      dueAt,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookLentToCustomer) EventType() string {
	return BookLentToCustomerEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookLentToCustomer) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// Loan returns the open loan this event creates.
func (e BookLentToCustomer) Loan() Loan {
	return Loan{
		CustomerID: e.CustomerID,
		BookID:     e.BookID,
		LoanedOn:   e.LoanedOn,
		DueAt:      e.DueAt,
	}
}

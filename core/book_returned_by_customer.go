package core

import (
	"time"
)

// BookReturnedByCustomerEventType is the event type identifier.
const BookReturnedByCustomerEventType = "BookReturnedByCustomer"

// BookReturnedByCustomer represents a return at or before the due point.
type BookReturnedByCustomer struct {
	CustomerID CustomerID
	BookID     BookID
	DueAt      DueAt
	OccurredAt OccurredAt
}

// BuildBookReturnedByCustomer creates a new BookReturnedByCustomer event.
func BuildBookReturnedByCustomer(customerID CustomerID, bookID BookID, dueAt DueAt, occurredAt time.Time) BookReturnedByCustomer {
	return BookReturnedByCustomer{
		CustomerID: customerID,
		BookID:     bookID,
		DueAt:      dueAt,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReturnedByCustomer) EventType() string {
	return BookReturnedByCustomerEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByCustomer) HasOccurredAt() time.Time {
	return e.OccurredAt
}

package core

import (
	"time"

	"github.com/google/uuid"
)

// BookReturnedLateEventType is the event type identifier.
const BookReturnedLateEventType = "BookReturnedLate"

// BookReturnedLate represents a return strictly after the due point.
// It carries everything needed for the LateLoan audit record.
type BookReturnedLate struct {
	LateLoanID   uuid.UUID
	CustomerID   CustomerID
	CustomerName string
	BookID       BookID
	BookName     string
	DueAt        DueAt
	OccurredAt   OccurredAt
}

// BuildBookReturnedLate creates a new BookReturnedLate event.
func BuildBookReturnedLate(
	lateLoanID uuid.UUID,
	customerID CustomerID,
	customerName string,
	bookID BookID,
	bookName string,
	dueAt DueAt,
	occurredAt time.Time,
) BookReturnedLate {

	return BookReturnedLate{
		LateLoanID:   lateLoanID,
		CustomerID:   customerID,
		CustomerName: customerName,
		BookID:       bookID,
		BookName:     bookName,
		DueAt:        dueAt,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReturnedLate) EventType() string {
	return BookReturnedLateEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedLate) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// LateLoan returns the audit record for this late return.
func (e BookReturnedLate) LateLoan() LateLoan {
	return LateLoan{
		ID:             e.LateLoanID,
		CustomerID:     e.CustomerID,
		CustomerName:   e.CustomerName,
		BookID:         e.BookID,
		BookName:       e.BookName,
		ExpectedReturn: e.DueAt,
		ActualReturn:   e.OccurredAt,
	}
}

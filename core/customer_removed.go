package core

import (
	"time"
)

// CustomerRemovedEventType is the event type identifier.
const CustomerRemovedEventType = "CustomerRemoved"

// CustomerRemoved represents the deletion of a customer without open loans.
type CustomerRemoved struct {
	CustomerID CustomerID
	Name       string
	OccurredAt OccurredAt
}

// BuildCustomerRemoved creates a new CustomerRemoved event.
func BuildCustomerRemoved(customerID CustomerID, name string, occurredAt time.Time) CustomerRemoved {
	return CustomerRemoved{
		CustomerID: customerID,
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e CustomerRemoved) EventType() string {
	return CustomerRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e CustomerRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

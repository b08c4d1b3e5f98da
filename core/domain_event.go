package core

import (
	"time"
)

// DomainEvent represents a business event decided by the loan lifecycle.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time
}

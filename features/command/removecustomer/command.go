package removecustomer

import (
	"time"

	"github.com/AntonStoeckl/library-records/core"
)

const (
	commandType = "RemoveCustomer"
)

// Command represents the intent to remove a customer.
type Command struct {
	CustomerID core.CustomerID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(customerID core.CustomerID, occurredAt time.Time) Command {
	return Command{
		CustomerID: customerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

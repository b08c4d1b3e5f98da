package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-records/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent of a customer to return a book.
type Command struct {
	CustomerID core.CustomerID
	BookID     core.BookID
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(customerID core.CustomerID, bookID core.BookID, occurredAt time.Time) Command {
	return Command{
		CustomerID: customerID,
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

package registercustomer

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-records/core"
)

const (
	commandType = "RegisterCustomer"
)

// Command represents the intent to register a new customer.
type Command struct {
	Name       string `validate:"required,max=200" label:"name"`
	City       string `validate:"required,max=100" label:"city"`
	Age        int    `validate:"gte=0,lte=150" label:"age"`
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters. Name and city are trimmed.
func BuildCommand(name, city string, age int, occurredAt time.Time) Command {
	return Command{
		Name:       strings.TrimSpace(name),
		City:       strings.TrimSpace(city),
		Age:        age,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

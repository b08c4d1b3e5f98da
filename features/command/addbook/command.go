package addbook

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-records/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	Title         string        `validate:"required,max=200" label:"title"`
	Author        string        `validate:"required,max=200" label:"author"`
	YearPublished int           `validate:"gte=0,lte=9999" label:"year published"`
	LoanType      core.LoanType `validate:"loantype" label:"loan type"`
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters. Title and author are trimmed.
func BuildCommand(title, author string, yearPublished int, loanType core.LoanType, occurredAt time.Time) Command {
	return Command{
		Title:         strings.TrimSpace(title),
		Author:        strings.TrimSpace(author),
		YearPublished: yearPublished,
		LoanType:      loanType,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}

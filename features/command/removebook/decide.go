package removebook

import (
	"fmt"

	"github.com/AntonStoeckl/library-records/core"
)

// State is what the handler read from the store before deciding.
type State struct {
	Book      core.Book
	BookFound bool
}

// Guard checks whether the book may be removed.
//
//	ERROR: ErrBookNotFound if the book does not exist
//	ERROR: ErrBookCurrentlyLoaned if the book is loaned
func Guard(s State, bookID core.BookID) error {
	if !s.BookFound {
		return fmt.Errorf("%w: id %d", core.ErrBookNotFound, bookID)
	}

	if s.Book.IsLoaned() {
		return fmt.Errorf("%w: %q", core.ErrBookCurrentlyLoaned, s.Book.Title)
	}

	return nil
}

// Decide implements the business logic of a removal. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: RemoveBook command is received
//	THEN: BookRemovedFromCatalog event
//	ERROR: see Guard
func Decide(s State, command Command) core.DecisionResult {
	if err := Guard(s, command.BookID); err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(
		core.BuildBookRemovedFromCatalog(command.BookID, s.Book.Title, command.OccurredAt),
	)
}

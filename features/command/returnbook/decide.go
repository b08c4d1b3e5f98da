package returnbook

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records/core"
)

// State is what the handler read from the store before deciding.
// Customer and book names are only needed for the late-loan record.
type State struct {
	Loan         core.Loan
	LoanFound    bool
	CustomerName string
	BookTitle    string
}

// Decide implements the business logic of a return. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: An open loan of BookID to CustomerID
//	WHEN: ReturnBook command is received
//	THEN: BookReturnedByCustomer event if the return is at or before the due point
//	THEN: BookReturnedLate event (with lateLoanID) if the return is strictly after the due point
//	ERROR: ErrLoanNotFound if there is no open loan for the pair
func Decide(s State, command Command, lateLoanID uuid.UUID) core.DecisionResult {
	if !s.LoanFound {
		return core.ErrorDecision(
			fmt.Errorf("%w: book %d is not loaned to customer %d", core.ErrLoanNotFound, command.BookID, command.CustomerID),
		)
	}

	if s.Loan.DueAt.IsOverdueAt(command.OccurredAt) {
		return core.SuccessDecision(
			core.BuildBookReturnedLate(
				lateLoanID,
				command.CustomerID,
				s.CustomerName,
				command.BookID,
				s.BookTitle,
				s.Loan.DueAt,
				command.OccurredAt,
			),
		)
	}

	return core.SuccessDecision(
		core.BuildBookReturnedByCustomer(
			command.CustomerID,
			command.BookID,
			s.Loan.DueAt,
			command.OccurredAt,
		),
	)
}

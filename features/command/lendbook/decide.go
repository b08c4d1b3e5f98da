package lendbook

import (
	"fmt"

	"github.com/AntonStoeckl/library-records/core"
)

// State is what the handler read from the store before deciding.
type State struct {
	Book          core.Book
	BookFound     bool
	CustomerFound bool
}

// Decide implements the business logic to determine whether a book should be lent to a customer.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a customer with CustomerID
//	WHEN: LendBook command is received
//	THEN: BookLentToCustomer event with the expected return computed from the book's loan type
//	ERROR: ErrBookNotFound if the book does not exist
//	ERROR: ErrCustomerNotFound if the customer does not exist
//	ERROR: ErrAlreadyLoaned if the book is loaned (to anyone, including this customer)
//	ERROR: ErrUnknownLoanType if the book's loan type has no duration policy
func Decide(s State, command Command) core.DecisionResult {
	if !s.BookFound {
		return core.ErrorDecision(fmt.Errorf("%w: id %d", core.ErrBookNotFound, command.BookID))
	}

	if !s.CustomerFound {
		return core.ErrorDecision(fmt.Errorf("%w: id %d", core.ErrCustomerNotFound, command.CustomerID))
	}

	if s.Book.IsLoaned() {
		return core.ErrorDecision(fmt.Errorf("%w: %q", core.ErrAlreadyLoaned, s.Book.Title))
	}

	policy, err := s.Book.LoanType.Policy()
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(
		core.BuildBookLentToCustomer(
			command.CustomerID,
			command.BookID,
			policy.DueAt(command.OccurredAt),
			command.OccurredAt,
		),
	)
}

package removecustomer

import (
	"fmt"

	"github.com/AntonStoeckl/library-records/core"
)

// State is what the handler read from the store before deciding.
type State struct {
	Customer      core.Customer
	CustomerFound bool
	OpenLoans     int64
}

// Guard checks whether the customer may be removed.
//
//	ERROR: ErrCustomerNotFound if the customer does not exist
//	ERROR: ErrCustomerHasOpenLoan if any open loan references the customer
func Guard(s State, customerID core.CustomerID) error {
	if !s.CustomerFound {
		return fmt.Errorf("%w: id %d", core.ErrCustomerNotFound, customerID)
	}

	if s.OpenLoans > 0 {
		return fmt.Errorf("%w: %s has %d open loan(s)", core.ErrCustomerHasOpenLoan, s.Customer.Name, s.OpenLoans)
	}

	return nil
}

// Decide implements the business logic of a removal. This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A customer with CustomerID
//	WHEN: RemoveCustomer command is received
//	THEN: CustomerRemoved event
//	ERROR: see Guard
func Decide(s State, command Command) core.DecisionResult {
	if err := Guard(s, command.CustomerID); err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(
		core.BuildCustomerRemoved(command.CustomerID, s.Customer.Name, command.OccurredAt),
	)
}

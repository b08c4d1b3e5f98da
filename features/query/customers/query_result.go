package customers

import (
	"github.com/AntonStoeckl/library-records/core"
)

// Customers represents the query result, ordered by customer id.
type Customers struct {
	Customers []core.Customer
	Count     int
}

// Len returns the number of customers found.
func (r Customers) Len() int {
	return r.Count
}

// Contains reports whether a customer with id is part of the result.
func (r Customers) Contains(id core.CustomerID) bool {
	for _, customer := range r.Customers {
		if customer.ID == id {
			return true
		}
	}

	return false
}

package openloans

import (
	"github.com/AntonStoeckl/library-records/core"
)

const (
	queryType = "OpenLoans"
)

// Query represents the intent to list open loans. A zero CustomerID lists all open loans.
type Query struct {
	CustomerID core.CustomerID
}

// BuildQuery creates a Query for all open loans.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForCustomer creates a Query for the open loans of one customer.
func BuildQueryForCustomer(customerID core.CustomerID) Query {
	return Query{
		CustomerID: customerID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

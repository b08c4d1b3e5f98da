package customers

import (
	"strings"

	"github.com/AntonStoeckl/library-records/core"
)

const (
	queryType = "Customers"
)

// Query represents the intent to list customers. An empty NameContains lists everybody.
// A non-zero CustomerID looks up that one customer instead.
type Query struct {
	NameContains string
	CustomerID   core.CustomerID
}

// BuildQuery creates a new Query. The search term is trimmed.
func BuildQuery(nameContains string) Query {
	return Query{
		NameContains: strings.TrimSpace(nameContains),
	}
}

// BuildQueryForCustomer creates a Query for a single customer. It is always read from the primary.
func BuildQueryForCustomer(customerID core.CustomerID) Query {
	return Query{
		CustomerID: customerID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

package lateloans

const (
	queryType = "LateLoans"
)

// Query represents the intent to list all late-loan records.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

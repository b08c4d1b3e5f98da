package books

import "strings"

const (
	queryType = "Books"
)

// Query represents the intent to list books. An empty TitleContains lists the whole catalog.
type Query struct {
	TitleContains string
}

// BuildQuery creates a new Query. The search term is trimmed.
func BuildQuery(titleContains string) Query {
	return Query{
		TitleContains: strings.TrimSpace(titleContains),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

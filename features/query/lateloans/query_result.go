package lateloans

import (
	"github.com/AntonStoeckl/library-records/core"
)

// LateLoans represents the query result, ordered by actual return.
type LateLoans struct {
	LateLoans []core.LateLoan
	Count     int
}

// Len returns the number of late-loan records.
func (r LateLoans) Len() int {
	return r.Count
}

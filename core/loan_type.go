package core

import (
	"fmt"
	"time"
)

// LoanType classifies how long a book may be borrowed.
type LoanType int

const (
	// LoanTypeTwoDays lends a book for 2 calendar days.
	LoanTypeTwoDays LoanType = 1
	// LoanTypeFiveDays lends a book for 5 calendar days.
	LoanTypeFiveDays LoanType = 2
	// LoanTypeTenDays lends a book for 10 calendar days.
	LoanTypeTenDays LoanType = 3
	// LoanTypeFiveMinutes lends a book for 5 minutes, used for short demo cycles.
	LoanTypeFiveMinutes LoanType = 4
)

// LoanPolicy is the borrowing period attached to a LoanType.
// Exactly one of calendarDays and clockSpan is set.
type LoanPolicy struct {
	label        string
	calendarDays int
	clockSpan    time.Duration
}

var loanPolicies = map[LoanType]LoanPolicy{
	LoanTypeTwoDays:     {label: "2 days", calendarDays: 2},
	LoanTypeFiveDays:    {label: "5 days", calendarDays: 5},
	LoanTypeTenDays:     {label: "10 days", calendarDays: 10},
	LoanTypeFiveMinutes: {label: "5 minutes", clockSpan: 5 * time.Minute},
}

// KnownLoanTypes lists the supported loan types in ascending order.
func KnownLoanTypes() []LoanType {
	return []LoanType{LoanTypeTwoDays, LoanTypeFiveDays, LoanTypeTenDays, LoanTypeFiveMinutes}
}

// Policy returns the LoanPolicy for this type or ErrUnknownLoanType.
func (t LoanType) Policy() (LoanPolicy, error) {
	policy, ok := loanPolicies[t]
	if !ok {
		return LoanPolicy{}, fmt.Errorf("%w: %d", ErrUnknownLoanType, int(t))
	}

	return policy, nil
}

// IsKnown reports whether a LoanPolicy exists for this type.
func (t LoanType) IsKnown() bool {
	_, ok := loanPolicies[t]
	return ok
}

// String returns a human-readable duration like "5 days", or "unknown".
func (t LoanType) String() string {
	if policy, ok := loanPolicies[t]; ok {
		return policy.label
	}

	return "unknown"
}

// DueAt computes the expected return for a loan made at loanedAt.
//
// Day based policies yield a calendar date, counted in loanedAt's location.
// Clock based policies yield an exact instant.
func (p LoanPolicy) DueAt(loanedAt time.Time) DueAt {
	if p.clockSpan > 0 {
		return DueBy(loanedAt.Add(p.clockSpan))
	}

	return DueOn(loanedAt.AddDate(0, 0, p.calendarDays))
}

// IsCalendarBased reports whether the policy yields date-only due values.
func (p LoanPolicy) IsCalendarBased() bool {
	return p.clockSpan == 0
}

package core

import (
	"errors"
	"time"
)

// ErrZeroDueAt is returned when an empty DueAt is marshaled.
var ErrZeroDueAt = errors.New("due at has no value")

// Granularity tells whether a DueAt holds a calendar date or an exact instant.
type Granularity int

const (
	// GranularityDate means the loan is due at the start of a calendar day.
	GranularityDate Granularity = iota + 1
	// GranularityInstant means the loan is due at an exact point in time.
	GranularityInstant
)

// DueAt is the expected return of a loan: either DueOn(date) or DueBy(instant).
//
// Only construct it with DueOn or DueBy.
type DueAt struct {
	granularity Granularity
	value       time.Time
}

// DueOn builds a date-only DueAt from the calendar day of t (in t's location).
func DueOn(t time.Time) DueAt {
	return DueAt{granularity: GranularityDate, value: ToCalendarDate(t)}
}

// DueBy builds an instant DueAt.
func DueBy(t time.Time) DueAt {
	return DueAt{granularity: GranularityInstant, value: ToOccurredAt(t)}
}

// Granularity returns the kind of this DueAt; zero for an empty value.
func (d DueAt) Granularity() Granularity {
	return d.granularity
}

// IsZero reports whether the DueAt was never set.
func (d DueAt) IsZero() bool {
	return d.granularity == 0
}

// Date returns the calendar date (midnight UTC) if this is a date-only value.
func (d DueAt) Date() (time.Time, bool) {
	return d.value, d.granularity == GranularityDate
}

// Instant returns the exact due time if this is an instant value.
func (d DueAt) Instant() (time.Time, bool) {
	return d.value, d.granularity == GranularityInstant
}

// Deadline resolves the DueAt to a point in time.
// A calendar date is due at 00:00 of that day in loc.
func (d DueAt) Deadline(loc *time.Location) time.Time {
	if d.granularity == GranularityDate {
		y, m, day := d.value.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, loc)
	}

	return d.value
}

// IsOverdueAt reports whether returning at t is strictly after the due point.
// Date-only values are resolved in t's location.
func (d DueAt) IsOverdueAt(t time.Time) bool {
	return t.After(d.Deadline(t.Location()))
}

// String renders YYYY-MM-DD for dates and YYYY-MM-DD hh:mm:ss (local time) for instants.
func (d DueAt) String() string {
	switch d.granularity {
	case GranularityDate:
		return d.value.Format(dateLayout)
	case GranularityInstant:
		return d.value.In(time.Local).Format(instantLayout)
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler so renderers print the same form as String.
func (d DueAt) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, ErrZeroDueAt
	}

	return []byte(d.String()), nil
}

package core

import (
	"time"
)

// BookID identifies a book.
type BookID = int64

// CustomerID identifies a customer.
type CustomerID = int64

// OccurredAt represents when something happened, in the operator's location.
type OccurredAt = time.Time

const (
	dateLayout    = "2006-01-02"
	instantLayout = "2006-01-02 15:04:05"
)

// ToOccurredAt truncates a timestamp to microsecond precision (what PostgreSQL stores).
// The location is kept because calendar dates are derived from it.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.Truncate(time.Microsecond)
}

// ToCalendarDate strips the time of day, keeping year, month and day as seen in t's location.
// The result is normalized to midnight UTC so two calendar dates compare with ==.
func ToCalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatCalendarDate renders a calendar date as YYYY-MM-DD.
func FormatCalendarDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Package returnbook implements the Return Book use case.
//
// A return closes the open loan and makes the book available again. When the return happens
// strictly after the loan's due point, the same write appends a late-loan record carrying the
// customer and book names and the expected and actual return.
//
// A date-only due value counts as due at the start of that day, in the location of the return
// timestamp. Instant due values are compared as is.
package returnbook

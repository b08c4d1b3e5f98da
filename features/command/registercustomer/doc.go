// Package registercustomer implements the Register Customer use case.
package registercustomer

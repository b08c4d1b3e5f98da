// Package addbook implements the Add Book to Catalog use case.
// Input is validated with struct tags; a new book always starts available.
package addbook

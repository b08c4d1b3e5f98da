// Package openloans implements the Open Loans read model.
//
// Without a customer it lists every open loan with customer name, book title and loan type,
// with a customer it lists only their loans (the list a customer picks from when returning a book).
package openloans

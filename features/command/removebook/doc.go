// Package removebook implements the Remove Book from Catalog use case.
//
// CanRemove is the guard check without side effects; the menu uses it to decide whether to ask
// for confirmation. Handle checks the guard again and deletes the book with a conditional write
// that only matches while the book is available.
package removebook

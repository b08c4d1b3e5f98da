// Package books implements the Books read model: the whole catalog, or a title search.
package books

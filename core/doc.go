// Package core contains the domain of the library record keeper:
// books, customers, open loans and the late-return audit trail.
//
// The loan lifecycle lives here as plain data and pure functions. LoanType maps a book's
// classifier to a LoanPolicy, a LoanPolicy turns a loan timestamp into a DueAt, and a DueAt
// decides whether a return was late. Decide functions in the feature packages combine these
// into DecisionResult values which carry a DomainEvent for the shell to apply to the store.
//
// Nothing in this package talks to a database or a terminal.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core

// Package shell connects the pure loan lifecycle in core to the record store.
//
// It maps StorableBook, StorableCustomer, StorableLoan and StorableLateLoan rows to the
// domain types and back, retries command handlers on concurrency conflicts, and carries
// the observability helpers shared by the observable wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell

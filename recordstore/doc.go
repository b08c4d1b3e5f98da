// Package recordstore provides the storage-facing types and ports of the library record keeper.
//
// It defines the storable shapes of books, customers, loans and late loans, the
// sentinel errors every store implementation returns, the consistency context values,
// and the small observability ports (Logger, MetricsCollector, TracingCollector,
// ContextualLogger) that keep store implementations free of a concrete telemetry stack.
//
// The PostgreSQL implementation lives in the postgresengine sub-package.
//
// Typical usage from a command handler:
//
//	ctx = recordstore.WithStrongConsistency(ctx)
//	book, err := store.FindBookByID(ctx, bookID)
//	if errors.Is(err, recordstore.ErrRecordNotFound) {
//		// map to a domain error
//	}
//	err = store.LendBook(ctx, loan)
//	if errors.Is(err, recordstore.ErrConcurrencyConflict) {
//		// re-read and decide again
//	}
package recordstore

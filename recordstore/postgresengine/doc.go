// Package postgresengine provides the PostgreSQL implementation of the library record store.
//
// It supports three database adapters (pgx, sql.DB, sqlx) and renders every statement with goqu.
// Each write that depends on a prior read is a single conditional statement; when the
// condition no longer holds, no row is affected and recordstore.ErrConcurrencyConflict is returned.
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewRecordStoreFromPGXPool(db)
//
//	// With a read replica, custom table names and logging
//	store, _ := postgresengine.NewRecordStoreFromPGXPoolAndReplica(
//		primary,
//		replica,
//		postgresengine.WithTableNames(postgresengine.TableNames{
//			Books: "lib_books", Customers: "lib_customers", Loans: "lib_loans", LateLoans: "lib_late_loans",
//		}),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	_ = store.CreateSchema(ctx)
//	err := store.LendBook(ctx, loan)
package postgresengine

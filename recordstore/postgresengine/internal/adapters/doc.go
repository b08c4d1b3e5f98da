// Package adapters provide database adapter implementations for the PostgreSQL record store.
//
// Three PostgreSQL libraries are supported: pgxpool.Pool (optionally with a read replica),
// sql.DB, and sqlx.DB. All of them present the same DBAdapter interface to the record store.
package adapters

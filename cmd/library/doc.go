// Command library runs the interactive library record keeper against PostgreSQL.
//
// Usage:
//
//	library [-output text|json] [-log-level debug|info|warn|error] [-create-schema] [-observability-enabled]
//
// Environment:
//
//	LIBRARY_POSTGRES_DSN          primary database (default: local development database)
//	LIBRARY_POSTGRES_REPLICA_DSN  optional read replica, used by queries (pgx adapter only)
//	DB_ADAPTER                    pgx (default), sql or sqlx
//	OTEL_EXPORTER_OTLP_ENDPOINT   OTLP gRPC endpoint when observability is enabled
package main

package postgresengine

import (
	"github.com/AntonStoeckl/library-records/recordstore"
)

// TableNames holds the names of the four tables the RecordStore works on.
type TableNames struct {
	Books     string
	Customers string
	Loans     string
	LateLoans string
}

// DefaultTableNames returns the table names used when WithTableNames is not supplied.
func DefaultTableNames() TableNames {
	return TableNames{
		Books:     defaultBooksTableName,
		Customers: defaultCustomersTableName,
		Loans:     defaultLoansTableName,
		LateLoans: defaultLateLoansTableName,
	}
}

// Option defines a functional option for configuring RecordStore.
type Option func(*RecordStore) error

// WithTableNames sets the table names for the RecordStore.
// All four names must be non-empty.
func WithTableNames(names TableNames) Option {
	return func(rs *RecordStore) error {
		if names.Books == "" || names.Customers == "" || names.Loans == "" || names.LateLoans == "" {
			return recordstore.ErrEmptyTableNameSupplied
		}

		rs.tables = names

		return nil
	}
}

// WithLogger sets the logger for the RecordStore.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Row counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Failures that make an operation fail.
func WithLogger(logger recordstore.Logger) Option {
	return func(rs *RecordStore) error {
		rs.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the RecordStore.
// It receives operation durations, row counts, concurrency conflicts and database errors.
func WithMetrics(collector recordstore.MetricsCollector) Option {
	return func(rs *RecordStore) error {
		rs.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the RecordStore.
// Every store operation gets its own span.
func WithTracing(collector recordstore.TracingCollector) Option {
	return func(rs *RecordStore) error {
		rs.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the RecordStore.
// Log records then carry trace and span ids when tracing is enabled.
func WithContextualLogger(logger recordstore.ContextualLogger) Option {
	return func(rs *RecordStore) error {
		rs.contextualLogger = logger
		return nil
	}
}

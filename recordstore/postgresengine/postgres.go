package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/recordstore/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName     = "books"
	defaultCustomersTableName = "customers"
	defaultLoansTableName     = "loans"
	defaultLateLoansTableName = "late_loans"
	dialectPostgres           = "postgres"

	colID            = "id"
	colTitle         = "title"
	colAuthor        = "author"
	colYearPublished = "year_published"
	colLoanType      = "loan_type"
	colStatus        = "status"
	colName          = "name"
	colCity          = "city"
	colAge           = "age"
	colCustomerID    = "customer_id"
	colBookID        = "book_id"
	colLoanedOn      = "loaned_on"
	colDueDate       = "due_date"
	colDueAt         = "due_at"
	colCustomerName  = "customer_name"
	colBookName      = "book_name"
	colExpectedDate  = "expected_due_date"
	colExpectedAt    = "expected_due_at"
	colReturnedAt    = "returned_at"

	aliasLoan     = "l"
	aliasCustomer = "c"
	aliasBook     = "b"
	cteReserved   = "reserved"
	cteRemoved    = "removed"
	cteReleased   = "released"

	castDate      = "?::date"
	castTimestamp = "?::timestamp with time zone"
	castUUID      = "?::uuid"
	nullDate      = "NULL::date"
	nullTimestamp = "NULL::timestamp with time zone"
	dateLayout    = "2006-01-02"
)

// statement is satisfied by all goqu datasets.
type statement interface {
	ToSQL() (string, []interface{}, error)
}

// RecordStore persists books, customers, loans and late loans in PostgreSQL.
// Create it with one of the New... constructors and share the pointer.
type RecordStore struct {
	db               adapters.DBAdapter
	tables           TableNames
	logger           recordstore.Logger
	metricsCollector recordstore.MetricsCollector
	tracingCollector recordstore.TracingCollector
	contextualLogger recordstore.ContextualLogger
}

// NewRecordStoreFromPGXPool creates a new RecordStore using a pgx Pool with optional configuration.
func NewRecordStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewPGXAdapter(db), options)
}

// NewRecordStoreFromPGXPoolAndReplica creates a new RecordStore using a primary and a replica pgx Pool.
// Reads made with recordstore.WithEventualConsistency go to the replica.
func NewRecordStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*RecordStore, error) {
	if primary == nil || replica == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewPGXAdapterWithReplica(primary, replica), options)
}

// NewRecordStoreFromSQLDB creates a new RecordStore using a sql.DB with optional configuration.
func NewRecordStoreFromSQLDB(db *sql.DB, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLAdapter(db), options)
}

// NewRecordStoreFromSQLX creates a new RecordStore using a sqlx.DB with optional configuration.
func NewRecordStoreFromSQLX(db *sqlx.DB, options ...Option) (*RecordStore, error) {
	if db == nil {
		return nil, recordstore.ErrNilDatabaseConnection
	}

	return newRecordStore(adapters.NewSQLXAdapter(db), options)
}

func newRecordStore(db adapters.DBAdapter, options []Option) (*RecordStore, error) {
	rs := &RecordStore{
		db:     db,
		tables: DefaultTableNames(),
	}

	for _, option := range options {
		if err := option(rs); err != nil {
			return nil, err
		}
	}

	return rs, nil
}

// TableNames returns the table names this RecordStore works on.
func (rs *RecordStore) TableNames() TableNames {
	return rs.tables
}

func (rs *RecordStore) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// queryRows renders stmt, runs it, and calls scanRow for every result row.
// It returns the number of rows scanned.
func (rs *RecordStore) queryRows(
	ctx context.Context,
	operation string,
	stmt statement,
	scanRow func(rows adapters.DBRows) error,
) (int, error) {

	ctx, observer := rs.startOperation(ctx, operation)

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		rs.logError(ctx, logMsgBuildQueryFailed, toSQLErr, logAttrOperation, operation)
		observer.finishError(errorTypeBuildQuery)

		return 0, errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	rows, queryErr := rs.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	rs.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if queryErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseQuery)

		return 0, rs.joinDriverError(recordstore.ErrQueryingRecordsFailed, queryErr)
	}
	defer rs.closeRows(ctx, rows)

	count := 0
	for rows.Next() {
		if scanErr := scanRow(rows); scanErr != nil {
			rs.logError(ctx, logMsgScanRowFailed, scanErr, logAttrOperation, operation)
			observer.finishError(errorTypeRowScan)

			return 0, errors.Join(recordstore.ErrScanningDBRowFailed, scanErr)
		}

		count++
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		rs.logError(ctx, logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeDatabaseQuery)

		return 0, rs.joinDriverError(recordstore.ErrQueryingRecordsFailed, rowsErr)
	}

	observer.finishSuccess(int64(count), duration)

	return count, nil
}

// execStatement renders stmt and executes it.
// Fewer affected rows than minRowsAffected is reported as recordstore.ErrConcurrencyConflict.
func (rs *RecordStore) execStatement(
	ctx context.Context,
	operation string,
	stmt statement,
	minRowsAffected int64,
) error {

	ctx, observer := rs.startOperation(ctx, operation)

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		rs.logError(ctx, logMsgBuildQueryFailed, toSQLErr, logAttrOperation, operation)
		observer.finishError(errorTypeBuildQuery)

		return errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	result, execErr := rs.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	rs.logQueryWithDuration(ctx, sqlQuery, operation, duration)

	if execErr != nil {
		joined := rs.joinDriverError(recordstore.ErrExecutingStatementFailed, execErr)
		if errors.Is(joined, recordstore.ErrConcurrencyConflict) {
			rs.logOperation(ctx, logMsgConcurrencyConflict, logAttrOperation, operation)
			observer.finishConflict(duration)

			return joined
		}

		rs.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		observer.finishError(errorTypeFor(joined))

		return joined
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		rs.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		observer.finishError(errorTypeRowsAffected)

		return errors.Join(recordstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < minRowsAffected {
		rs.logOperation(
			ctx,
			logMsgConcurrencyConflict,
			logAttrOperation, operation,
			logAttrExpectedRows, minRowsAffected,
			logAttrRowsAffected, rowsAffected,
		)
		observer.finishConflict(duration)

		return recordstore.ErrConcurrencyConflict
	}

	observer.finishSuccess(rowsAffected, duration)

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (rs *RecordStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		rs.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func dateLiteral(t *time.Time) goqu.Expression {
	if t == nil {
		return goqu.L(nullDate)
	}

	return goqu.L(castDate, t.Format(dateLayout))
}

func timestampLiteral(t *time.Time) goqu.Expression {
	if t == nil {
		return goqu.L(nullTimestamp)
	}

	return goqu.L(castTimestamp, *t)
}

func qualified(alias, column string) string {
	return alias + "." + column
}

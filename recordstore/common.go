package recordstore

import (
	"errors"
)

var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
var ErrNilDatabaseConnection = errors.New("database connection is nil")

// ErrConcurrencyConflict is returned when a conditional write matched no row
// because the record changed between the read and the write.
var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

var ErrRecordNotFound = errors.New("record not found")
var ErrReferencedRecordMissing = errors.New("referenced record does not exist")
var ErrInvalidDueColumns = errors.New("exactly one of due date and due instant must be set")

var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingRecordsFailed = errors.New("querying records failed")
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
var ErrExecutingStatementFailed = errors.New("executing statement failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
var ErrCreatingSchemaFailed = errors.New("creating schema failed")

// Book status values as stored in the books table.
const (
	BookStatusAvailable = "available"
	BookStatusLoaned    = "loaned"
)

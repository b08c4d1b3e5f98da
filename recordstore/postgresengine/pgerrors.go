package postgresengine

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-records/recordstore"
)

// sqlStateOf extracts the PostgreSQL SQLSTATE from a pgx or lib/pq error.
func sqlStateOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// joinDriverError joins the driver error with fallback, or with a more specific
// store error when the SQLSTATE tells what went wrong.
func (rs *RecordStore) joinDriverError(fallback error, driverErr error) error {
	switch sqlStateOf(driverErr) {
	case pgerrcode.ForeignKeyViolation:
		return errors.Join(recordstore.ErrReferencedRecordMissing, driverErr)

	case pgerrcode.UniqueViolation, pgerrcode.SerializationFailure:
		return errors.Join(recordstore.ErrConcurrencyConflict, driverErr)

	default:
		return errors.Join(fallback, driverErr)
	}
}

func errorTypeFor(err error) string {
	switch {
	case errors.Is(err, recordstore.ErrReferencedRecordMissing):
		return errorTypeReferencedRecordMissing
	case errors.Is(err, recordstore.ErrQueryingRecordsFailed):
		return errorTypeDatabaseQuery
	default:
		return errorTypeDatabaseExec
	}
}

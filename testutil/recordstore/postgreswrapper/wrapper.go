package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-records/recordstore/postgresengine"
	"github.com/AntonStoeckl/library-records/shell/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"

	setupTimeout = 10 * time.Second
)

// Wrapper abstracts over the three database handle types.
type Wrapper interface {
	RecordStore() *postgresengine.RecordStore
	TableNames() postgresengine.TableNames
	Close()
}

type execFunc func(ctx context.Context, query string) error

type baseWrapper struct {
	t      testing.TB
	rs     *postgresengine.RecordStore
	tables postgresengine.TableNames
	exec   execFunc
	close  func()
}

func (w *baseWrapper) RecordStore() *postgresengine.RecordStore {
	return w.rs
}

func (w *baseWrapper) TableNames() postgresengine.TableNames {
	return w.tables
}

// Close drops the tables of this wrapper and closes the database handle.
func (w *baseWrapper) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	drop := fmt.Sprintf("DROP TABLE IF EXISTS %s, %s, %s, %s",
		pgx.Identifier{w.tables.LateLoans}.Sanitize(),
		pgx.Identifier{w.tables.Loans}.Sanitize(),
		pgx.Identifier{w.tables.Books}.Sanitize(),
		pgx.Identifier{w.tables.Customers}.Sanitize(),
	)

	if err := w.exec(ctx, drop); err != nil {
		w.t.Logf("dropping test tables failed: %v", err)
	}

	w.close()
}

// CreateWrapperWithTestConfig creates a wrapper with its own schema, or skips the test
// when no test database is configured.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	dsn := config.PostgresTestDSN()
	if dsn == "" {
		t.Skipf("%s is not set, skipping PostgreSQL integration test", config.EnvPostgresTestDSN)
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	tables := UniqueTableNames()
	options = append([]postgresengine.Option{postgresengine.WithTableNames(tables)}, options...)

	w := &baseWrapper{t: t, tables: tables}

	switch adapterType := strings.ToLower(os.Getenv("ADAPTER_TYPE")); adapterType {
	case typePGXPool, "":
		pool, err := config.OpenPostgresPGXPool(ctx, dsn)
		require.NoError(t, err, "error connecting to DB pool in test setup")

		w.rs, err = postgresengine.NewRecordStoreFromPGXPool(pool, options...)
		require.NoError(t, err)

		w.exec = func(ctx context.Context, query string) error {
			_, execErr := pool.Exec(ctx, query)
			return execErr
		}
		w.close = pool.Close

	case typeSQLDB:
		db, err := config.OpenPostgresSQLDB(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		w.rs, err = postgresengine.NewRecordStoreFromSQLDB(db, options...)
		require.NoError(t, err)

		w.exec = sqlExec(db)
		w.close = func() { _ = db.Close() }

	case typeSQLXDB:
		db, err := config.OpenPostgresSQLX(ctx, dsn)
		require.NoError(t, err, "error connecting to DB in test setup")

		w.rs, err = postgresengine.NewRecordStoreFromSQLX(db, options...)
		require.NoError(t, err)

		w.exec = sqlExec(db.DB)
		w.close = func() { _ = db.Close() }

	default:
		t.Fatalf("unsupported ADAPTER_TYPE: %s", adapterType)
	}

	require.NoError(t, w.rs.CreateSchema(ctx), "creating test schema")

	return w
}

// UniqueTableNames returns table names no other test uses.
func UniqueTableNames() postgresengine.TableNames {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	return postgresengine.TableNames{
		Books:     "books_" + suffix,
		Customers: "customers_" + suffix,
		Loans:     "loans_" + suffix,
		LateLoans: "late_loans_" + suffix,
	}
}

func sqlExec(db *sql.DB) execFunc {
	return func(ctx context.Context, query string) error {
		_, err := db.ExecContext(ctx, query)
		return err
	}
}

package postgresengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/library-records/recordstore"
)

const operationCreateSchema = "create_schema"

// rawStatement lets DDL strings go through the same execution path as goqu datasets.
type rawStatement string

func (s rawStatement) ToSQL() (string, []interface{}, error) {
	return string(s), nil, nil
}

// CreateSchema creates the four tables and their index if they do not exist yet.
func (rs *RecordStore) CreateSchema(ctx context.Context) error {
	for _, ddl := range rs.schemaStatements() {
		if err := rs.execStatement(ctx, operationCreateSchema, ddl, 0); err != nil {
			return errors.Join(recordstore.ErrCreatingSchemaFailed, err)
		}
	}

	return nil
}

func (rs *RecordStore) schemaStatements() []rawStatement {
	books := pgx.Identifier{rs.tables.Books}.Sanitize()
	customers := pgx.Identifier{rs.tables.Customers}.Sanitize()
	loans := pgx.Identifier{rs.tables.Loans}.Sanitize()
	lateLoans := pgx.Identifier{rs.tables.LateLoans}.Sanitize()
	loansByCustomer := pgx.Identifier{rs.tables.Loans + "_customer_id_idx"}.Sanitize()

	return []rawStatement{
		rawStatement(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id             bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title          text     NOT NULL,
	author         text     NOT NULL,
	year_published integer  NOT NULL,
	loan_type      smallint NOT NULL,
	status         text     NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'loaned'))
)`, books)),

		rawStatement(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id   bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name text    NOT NULL,
	city text    NOT NULL,
	age  integer NOT NULL
)`, customers)),

		rawStatement(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	customer_id bigint NOT NULL REFERENCES %s (id),
	book_id     bigint NOT NULL UNIQUE REFERENCES %s (id),
	loaned_on   date   NOT NULL,
	due_date    date,
	due_at      timestamp with time zone,
	CHECK ((due_date IS NULL) <> (due_at IS NULL))
)`, loans, customers, books)),

		rawStatement(fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (customer_id)`, loansByCustomer, loans)),

		rawStatement(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id                uuid   PRIMARY KEY,
	customer_id       bigint NOT NULL,
	customer_name     text   NOT NULL,
	book_id           bigint NOT NULL,
	book_name         text   NOT NULL,
	expected_due_date date,
	expected_due_at   timestamp with time zone,
	returned_at       timestamp with time zone NOT NULL,
	CHECK ((expected_due_date IS NULL) <> (expected_due_at IS NULL))
)`, lateLoans)),
	}
}

package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/recordstore/postgresengine/internal/adapters"
)

const operationLateLoans = "late_loans"

var lateLoanColumns = []interface{}{
	colID, colCustomerID, colCustomerName, colBookID, colBookName, colExpectedDate, colExpectedAt, colReturnedAt,
}

// LateLoans returns all late-loan records, oldest return first.
// Late loans are only written by ReturnBook.
func (rs *RecordStore) LateLoans(ctx context.Context) ([]recordstore.StorableLateLoan, error) {
	stmt := rs.builder().
		From(rs.tables.LateLoans).
		Select(
			goqu.Cast(goqu.C(colID), "TEXT"),
			colCustomerID,
			colCustomerName,
			colBookID,
			colBookName,
			colExpectedDate,
			colExpectedAt,
			colReturnedAt,
		).
		Order(goqu.C(colReturnedAt).Asc())

	lateLoans := make([]recordstore.StorableLateLoan, 0)

	_, err := rs.queryRows(ctx, operationLateLoans, stmt, func(rows adapters.DBRows) error {
		var lateLoan recordstore.StorableLateLoan
		var rawID string

		scanErr := rows.Scan(
			&rawID,
			&lateLoan.CustomerID,
			&lateLoan.CustomerName,
			&lateLoan.BookID,
			&lateLoan.BookName,
			&lateLoan.ExpectedDueDate,
			&lateLoan.ExpectedDueAt,
			&lateLoan.ReturnedAt,
		)
		if scanErr != nil {
			return scanErr
		}

		id, parseErr := uuid.Parse(rawID)
		if parseErr != nil {
			return parseErr
		}

		lateLoan.ID = id
		lateLoans = append(lateLoans, lateLoan)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return lateLoans, nil
}

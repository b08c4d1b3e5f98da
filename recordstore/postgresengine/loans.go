package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/recordstore/postgresengine/internal/adapters"
)

const (
	operationFindOpenLoan             = "find_open_loan"
	operationLendBook                 = "lend_book"
	operationReturnBook               = "return_book"
	operationReturnBookLate           = "return_book_late"
	operationOpenLoans                = "open_loans"
	operationOpenLoansOfCustomer      = "open_loans_of_customer"
	operationCountOpenLoansOfCustomer = "count_open_loans_of_customer"
)

var loanColumns = []interface{}{colCustomerID, colBookID, colLoanedOn, colDueDate, colDueAt}

func scanLoan(rows adapters.DBRows, loan *recordstore.StorableLoan) error {
	return rows.Scan(&loan.CustomerID, &loan.BookID, &loan.LoanedOn, &loan.DueDate, &loan.DueAt)
}

// FindOpenLoan returns the open loan of the book to the customer or recordstore.ErrRecordNotFound.
func (rs *RecordStore) FindOpenLoan(ctx context.Context, customerID int64, bookID int64) (recordstore.StorableLoan, error) {
	stmt := rs.builder().
		From(rs.tables.Loans).
		Select(loanColumns...).
		Where(
			goqu.C(colCustomerID).Eq(customerID),
			goqu.C(colBookID).Eq(bookID),
		)

	var loan recordstore.StorableLoan

	count, err := rs.queryRows(ctx, operationFindOpenLoan, stmt, func(rows adapters.DBRows) error {
		return scanLoan(rows, &loan)
	})
	if err != nil {
		return recordstore.StorableLoan{}, err
	}

	if count == 0 {
		return recordstore.StorableLoan{}, recordstore.ErrRecordNotFound
	}

	return loan, nil
}

// LendBook flips the book to loaned and inserts the loan in one statement:
//
//	WITH reserved AS (UPDATE books SET status = 'loaned' WHERE id = ? AND status = 'available' RETURNING id)
//	INSERT INTO loans (...) SELECT ... FROM reserved
//
// If the book is not available anymore, nothing is written and recordstore.ErrConcurrencyConflict is returned.
// A customer that does not exist yields recordstore.ErrReferencedRecordMissing.
func (rs *RecordStore) LendBook(ctx context.Context, loan recordstore.StorableLoan) error {
	builder := rs.builder()

	reserveStmt := builder.
		Update(rs.tables.Books).
		Set(goqu.Record{colStatus: recordstore.BookStatusLoaned}).
		Where(
			goqu.C(colID).Eq(loan.BookID),
			goqu.C(colStatus).Eq(recordstore.BookStatusAvailable),
		).
		Returning(colID)

	valuesStmt := builder.
		From(cteReserved).
		Select(
			goqu.V(loan.CustomerID),
			goqu.I(qualified(cteReserved, colID)),
			dateLiteral(&loan.LoanedOn),
			dateLiteral(loan.DueDate),
			timestampLiteral(loan.DueAt),
		)

	insertStmt := builder.
		Insert(rs.tables.Loans).
		With(cteReserved, reserveStmt).
		Cols(loanColumns...).
		FromQuery(valuesStmt)

	return rs.execStatement(ctx, operationLendBook, insertStmt, 1)
}

// ReturnBook deletes the open loan and flips the book back to available in one statement.
// With a non-nil lateLoan the same statement also appends the late-loan record.
//
// If the loan does not exist anymore, nothing is written and recordstore.ErrConcurrencyConflict is returned.
func (rs *RecordStore) ReturnBook(
	ctx context.Context,
	customerID int64,
	bookID int64,
	lateLoan *recordstore.StorableLateLoan,
) error {

	builder := rs.builder()

	removeStmt := builder.
		Delete(rs.tables.Loans).
		Where(
			goqu.C(colCustomerID).Eq(customerID),
			goqu.C(colBookID).Eq(bookID),
		).
		Returning(colBookID)

	removedBookIDs := builder.From(cteRemoved).Select(colBookID)

	if lateLoan == nil {
		releaseStmt := builder.
			Update(rs.tables.Books).
			With(cteRemoved, removeStmt).
			Set(goqu.Record{colStatus: recordstore.BookStatusAvailable}).
			Where(goqu.C(colID).In(removedBookIDs))

		return rs.execStatement(ctx, operationReturnBook, releaseStmt, 1)
	}

	releaseStmt := builder.
		Update(rs.tables.Books).
		Set(goqu.Record{colStatus: recordstore.BookStatusAvailable}).
		Where(goqu.C(colID).In(removedBookIDs)).
		Returning(colID)

	valuesStmt := builder.
		From(cteReleased).
		Select(
			goqu.L(castUUID, lateLoan.ID.String()),
			goqu.V(lateLoan.CustomerID),
			goqu.V(lateLoan.CustomerName),
			goqu.I(qualified(cteReleased, colID)),
			goqu.V(lateLoan.BookName),
			dateLiteral(lateLoan.ExpectedDueDate),
			timestampLiteral(lateLoan.ExpectedDueAt),
			timestampLiteral(&lateLoan.ReturnedAt),
		)

	insertStmt := builder.
		Insert(rs.tables.LateLoans).
		With(cteRemoved, removeStmt).
		With(cteReleased, releaseStmt).
		Cols(lateLoanColumns...).
		FromQuery(valuesStmt)

	return rs.execStatement(ctx, operationReturnBookLate, insertStmt, 1)
}

// OpenLoans returns all open loans joined with customer name, book title and loan type.
func (rs *RecordStore) OpenLoans(ctx context.Context) ([]recordstore.StorableOpenLoan, error) {
	return rs.listOpenLoans(ctx, operationOpenLoans, rs.openLoansSelect())
}

// OpenLoansOfCustomer returns the open loans of one customer.
func (rs *RecordStore) OpenLoansOfCustomer(ctx context.Context, customerID int64) ([]recordstore.StorableOpenLoan, error) {
	stmt := rs.openLoansSelect().
		Where(goqu.I(qualified(aliasLoan, colCustomerID)).Eq(customerID))

	return rs.listOpenLoans(ctx, operationOpenLoansOfCustomer, stmt)
}

// CountOpenLoansOfCustomer returns how many books the customer currently has.
func (rs *RecordStore) CountOpenLoansOfCustomer(ctx context.Context, customerID int64) (int64, error) {
	stmt := rs.builder().
		From(rs.tables.Loans).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colCustomerID).Eq(customerID))

	var count int64

	_, err := rs.queryRows(ctx, operationCountOpenLoansOfCustomer, stmt, func(rows adapters.DBRows) error {
		return rows.Scan(&count)
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (rs *RecordStore) openLoansSelect() *goqu.SelectDataset {
	return rs.builder().
		From(goqu.T(rs.tables.Loans).As(aliasLoan)).
		Join(
			goqu.T(rs.tables.Customers).As(aliasCustomer),
			goqu.On(goqu.I(qualified(aliasCustomer, colID)).Eq(goqu.I(qualified(aliasLoan, colCustomerID)))),
		).
		Join(
			goqu.T(rs.tables.Books).As(aliasBook),
			goqu.On(goqu.I(qualified(aliasBook, colID)).Eq(goqu.I(qualified(aliasLoan, colBookID)))),
		).
		Select(
			goqu.I(qualified(aliasLoan, colCustomerID)),
			goqu.I(qualified(aliasLoan, colBookID)),
			goqu.I(qualified(aliasLoan, colLoanedOn)),
			goqu.I(qualified(aliasLoan, colDueDate)),
			goqu.I(qualified(aliasLoan, colDueAt)),
			goqu.I(qualified(aliasCustomer, colName)),
			goqu.I(qualified(aliasBook, colTitle)),
			goqu.I(qualified(aliasBook, colLoanType)),
		).
		Order(
			goqu.I(qualified(aliasLoan, colLoanedOn)).Asc(),
			goqu.I(qualified(aliasLoan, colBookID)).Asc(),
		)
}

func (rs *RecordStore) listOpenLoans(ctx context.Context, operation string, stmt statement) ([]recordstore.StorableOpenLoan, error) {
	loans := make([]recordstore.StorableOpenLoan, 0)

	_, err := rs.queryRows(ctx, operation, stmt, func(rows adapters.DBRows) error {
		var loan recordstore.StorableOpenLoan

		scanErr := rows.Scan(
			&loan.CustomerID,
			&loan.BookID,
			&loan.LoanedOn,
			&loan.DueDate,
			&loan.DueAt,
			&loan.CustomerName,
			&loan.BookTitle,
			&loan.LoanType,
		)
		if scanErr != nil {
			return scanErr
		}

		loans = append(loans, loan)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return loans, nil
}

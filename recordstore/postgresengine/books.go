package postgresengine

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/recordstore/postgresengine/internal/adapters"
)

const (
	operationFindBookByID        = "find_book_by_id"
	operationAllBooks            = "all_books"
	operationFindBooksByTitle    = "find_books_by_title"
	operationInsertBook          = "insert_book"
	operationDeleteAvailableBook = "delete_available_book"
)

var bookColumns = []interface{}{colID, colTitle, colAuthor, colYearPublished, colLoanType, colStatus}

func scanBook(rows adapters.DBRows, book *recordstore.StorableBook) error {
	return rows.Scan(&book.ID, &book.Title, &book.Author, &book.YearPublished, &book.LoanType, &book.Status)
}

// FindBookByID returns the book with the given id or recordstore.ErrRecordNotFound.
func (rs *RecordStore) FindBookByID(ctx context.Context, id int64) (recordstore.StorableBook, error) {
	stmt := rs.builder().
		From(rs.tables.Books).
		Select(bookColumns...).
		Where(goqu.C(colID).Eq(id))

	var book recordstore.StorableBook

	count, err := rs.queryRows(ctx, operationFindBookByID, stmt, func(rows adapters.DBRows) error {
		return scanBook(rows, &book)
	})
	if err != nil {
		return recordstore.StorableBook{}, err
	}

	if count == 0 {
		return recordstore.StorableBook{}, recordstore.ErrRecordNotFound
	}

	return book, nil
}

// AllBooks returns all books ordered by id.
func (rs *RecordStore) AllBooks(ctx context.Context) ([]recordstore.StorableBook, error) {
	stmt := rs.builder().
		From(rs.tables.Books).
		Select(bookColumns...).
		Order(goqu.C(colID).Asc())

	return rs.listBooks(ctx, operationAllBooks, stmt)
}

// FindBooksByTitle returns the books whose title contains term, ignoring case.
func (rs *RecordStore) FindBooksByTitle(ctx context.Context, term string) ([]recordstore.StorableBook, error) {
	stmt := rs.builder().
		From(rs.tables.Books).
		Select(bookColumns...).
		Where(goqu.C(colTitle).ILike(containsPattern(term))).
		Order(goqu.C(colID).Asc())

	return rs.listBooks(ctx, operationFindBooksByTitle, stmt)
}

func (rs *RecordStore) listBooks(ctx context.Context, operation string, stmt statement) ([]recordstore.StorableBook, error) {
	books := make([]recordstore.StorableBook, 0)

	_, err := rs.queryRows(ctx, operation, stmt, func(rows adapters.DBRows) error {
		var book recordstore.StorableBook
		if scanErr := scanBook(rows, &book); scanErr != nil {
			return scanErr
		}

		books = append(books, book)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// InsertBook stores a new book and returns its generated id.
// The book's ID is ignored; a missing Status defaults to available.
func (rs *RecordStore) InsertBook(ctx context.Context, book recordstore.StorableBook) (int64, error) {
	status := book.Status
	if status == "" {
		status = recordstore.BookStatusAvailable
	}

	stmt := rs.builder().
		Insert(rs.tables.Books).
		Rows(goqu.Record{
			colTitle:         book.Title,
			colAuthor:        book.Author,
			colYearPublished: book.YearPublished,
			colLoanType:      book.LoanType,
			colStatus:        status,
		}).
		Returning(colID)

	return rs.insertReturningID(ctx, operationInsertBook, stmt)
}

// DeleteAvailableBook deletes the book only while it is available.
// If the book is gone or loaned, nothing is deleted and recordstore.ErrConcurrencyConflict is returned.
func (rs *RecordStore) DeleteAvailableBook(ctx context.Context, id int64) error {
	stmt := rs.builder().
		Delete(rs.tables.Books).
		Where(
			goqu.C(colID).Eq(id),
			goqu.C(colStatus).Eq(recordstore.BookStatusAvailable),
		)

	return rs.execStatement(ctx, operationDeleteAvailableBook, stmt, 1)
}

// insertReturningID runs an INSERT ... RETURNING id on the primary database.
func (rs *RecordStore) insertReturningID(ctx context.Context, operation string, stmt statement) (int64, error) {
	var id int64

	count, err := rs.queryRows(recordstore.WithStrongConsistency(ctx), operation, stmt, func(rows adapters.DBRows) error {
		return rows.Scan(&id)
	})
	if err != nil {
		return 0, err
	}

	if count == 0 {
		return 0, recordstore.ErrExecutingStatementFailed
	}

	return id, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere, with wildcards in term escaped.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

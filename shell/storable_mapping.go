package shell

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/library-records/core"
	"github.com/AntonStoeckl/library-records/recordstore"
)

var (
	// ErrMappingToDomainFailed is returned when a stored row can't be turned into a domain value.
	ErrMappingToDomainFailed = errors.New("mapping to domain value failed")

	// ErrMappingToStorableFailed is returned when a domain value can't be turned into a storable row.
	ErrMappingToStorableFailed = errors.New("mapping to storable row failed")
)

// BookFrom converts a StorableBook to a core.Book.
func BookFrom(book recordstore.StorableBook) core.Book {
	return core.Book{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		YearPublished: book.YearPublished,
		LoanType:      core.LoanType(book.LoanType),
		Status:        core.BookStatus(book.Status),
	}
}

// BooksFrom converts multiple StorableBooks.
func BooksFrom(books []recordstore.StorableBook) []core.Book {
	result := make([]core.Book, 0, len(books))
	for _, book := range books {
		result = append(result, BookFrom(book))
	}

	return result
}

// StorableBookFrom converts a core.Book for insertion. An empty status becomes available.
func StorableBookFrom(book core.Book) recordstore.StorableBook {
	status := string(book.Status)
	if status == "" {
		status = recordstore.BookStatusAvailable
	}

	return recordstore.StorableBook{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		YearPublished: book.YearPublished,
		LoanType:      int(book.LoanType),
		Status:        status,
	}
}

// CustomerFrom converts a StorableCustomer to a core.Customer.
func CustomerFrom(customer recordstore.StorableCustomer) core.Customer {
	return core.Customer{
		ID:   customer.ID,
		Name: customer.Name,
		City: customer.City,
		Age:  customer.Age,
	}
}

// CustomersFrom converts multiple StorableCustomers.
func CustomersFrom(customers []recordstore.StorableCustomer) []core.Customer {
	result := make([]core.Customer, 0, len(customers))
	for _, customer := range customers {
		result = append(result, CustomerFrom(customer))
	}

	return result
}

// StorableCustomerFrom converts a core.Customer for insertion.
func StorableCustomerFrom(customer core.Customer) recordstore.StorableCustomer {
	return recordstore.StorableCustomer{
		ID:   customer.ID,
		Name: customer.Name,
		City: customer.City,
		Age:  customer.Age,
	}
}

// LoanFrom converts a StorableLoan to a core.Loan.
func LoanFrom(loan recordstore.StorableLoan) (core.Loan, error) {
	dueAt, err := dueAtFrom(loan.DueDate, loan.DueAt)
	if err != nil {
		return core.Loan{}, err
	}

	return core.Loan{
		CustomerID: loan.CustomerID,
		BookID:     loan.BookID,
		LoanedOn:   core.ToCalendarDate(loan.LoanedOn),
		DueAt:      dueAt,
	}, nil
}

// StorableLoanFrom converts a core.Loan for insertion.
func StorableLoanFrom(loan core.Loan) (recordstore.StorableLoan, error) {
	dueDate, dueAt := dueColumnsFrom(loan.DueAt)

	storable, err := recordstore.BuildStorableLoan(loan.CustomerID, loan.BookID, loan.LoanedOn, dueDate, dueAt)
	if err != nil {
		return recordstore.StorableLoan{}, errors.Join(ErrMappingToStorableFailed, err)
	}

	return storable, nil
}

// OpenLoanDetailsFrom converts multiple StorableOpenLoans.
func OpenLoanDetailsFrom(loans []recordstore.StorableOpenLoan) ([]core.OpenLoanDetails, error) {
	result := make([]core.OpenLoanDetails, 0, len(loans))

	for _, openLoan := range loans {
		loan, err := LoanFrom(openLoan.StorableLoan)
		if err != nil {
			return nil, err
		}

		result = append(result, core.OpenLoanDetails{
			Loan:         loan,
			CustomerName: openLoan.CustomerName,
			BookTitle:    openLoan.BookTitle,
			LoanType:     core.LoanType(openLoan.LoanType),
		})
	}

	return result, nil
}

// LateLoanFrom converts a StorableLateLoan to a core.LateLoan.
func LateLoanFrom(lateLoan recordstore.StorableLateLoan) (core.LateLoan, error) {
	expected, err := dueAtFrom(lateLoan.ExpectedDueDate, lateLoan.ExpectedDueAt)
	if err != nil {
		return core.LateLoan{}, err
	}

	return core.LateLoan{
		ID:             lateLoan.ID,
		CustomerID:     lateLoan.CustomerID,
		CustomerName:   lateLoan.CustomerName,
		BookID:         lateLoan.BookID,
		BookName:       lateLoan.BookName,
		ExpectedReturn: expected,
		ActualReturn:   lateLoan.ReturnedAt,
	}, nil
}

// LateLoansFrom converts multiple StorableLateLoans.
func LateLoansFrom(lateLoans []recordstore.StorableLateLoan) ([]core.LateLoan, error) {
	result := make([]core.LateLoan, 0, len(lateLoans))

	for _, lateLoan := range lateLoans {
		mapped, err := LateLoanFrom(lateLoan)
		if err != nil {
			return nil, err
		}

		result = append(result, mapped)
	}

	return result, nil
}

// StorableLateLoanFrom converts a core.LateLoan for insertion.
func StorableLateLoanFrom(lateLoan core.LateLoan) (recordstore.StorableLateLoan, error) {
	dueDate, dueAt := dueColumnsFrom(lateLoan.ExpectedReturn)

	storable, err := recordstore.BuildStorableLateLoan(
		lateLoan.ID,
		lateLoan.CustomerID,
		lateLoan.CustomerName,
		lateLoan.BookID,
		lateLoan.BookName,
		dueDate,
		dueAt,
		lateLoan.ActualReturn,
	)

	if err != nil {
		return recordstore.StorableLateLoan{}, errors.Join(ErrMappingToStorableFailed, err)
	}

	return storable, nil
}

// dueColumnsFrom splits a DueAt into the (date, instant) column pair. A zero DueAt gives two nils.
func dueColumnsFrom(dueAt core.DueAt) (*time.Time, *time.Time) {
	if date, ok := dueAt.Date(); ok {
		return &date, nil
	}

	if instant, ok := dueAt.Instant(); ok {
		return nil, &instant
	}

	return nil, nil
}

func dueAtFrom(dueDate *time.Time, dueAt *time.Time) (core.DueAt, error) {
	switch {
	case dueDate != nil && dueAt == nil:
		return core.DueOn(*dueDate), nil
	case dueAt != nil && dueDate == nil:
		return core.DueBy(*dueAt), nil
	default:
		return core.DueAt{}, errors.Join(ErrMappingToDomainFailed, recordstore.ErrInvalidDueColumns)
	}
}

package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/AntonStoeckl/library-records/recordstore"
)

// Operation names used for failure injection and call counting.
const (
	OpFindBookByID               = "FindBookByID"
	OpFindCustomerByID           = "FindCustomerByID"
	OpFindOpenLoan               = "FindOpenLoan"
	OpLendBook                   = "LendBook"
	OpReturnBook                 = "ReturnBook"
	OpInsertBook                 = "InsertBook"
	OpInsertCustomer             = "InsertCustomer"
	OpDeleteAvailableBook        = "DeleteAvailableBook"
	OpDeleteCustomerWithoutLoans = "DeleteCustomerWithoutLoans"
	OpCountOpenLoansOfCustomer   = "CountOpenLoansOfCustomer"
	OpAllBooks                   = "AllBooks"
	OpFindBooksByTitle           = "FindBooksByTitle"
	OpAllCustomers               = "AllCustomers"
	OpFindCustomersByName        = "FindCustomersByName"
	OpOpenLoans                  = "OpenLoans"
	OpOpenLoansOfCustomer        = "OpenLoansOfCustomer"
	OpLateLoans                  = "LateLoans"
)

type loanKey struct {
	customerID int64
	bookID     int64
}

// Store is a goroutine-safe in-memory record store.
type Store struct {
	mu sync.Mutex

	books     map[int64]recordstore.StorableBook
	customers map[int64]recordstore.StorableCustomer
	loans     map[loanKey]recordstore.StorableLoan
	lateLoans []recordstore.StorableLateLoan

	nextBookID     int64
	nextCustomerID int64

	failures    map[string][]error
	calls       map[string]int
	consistency map[string]recordstore.ConsistencyLevel
	hooks       map[string]func(*Store)
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		books:       make(map[int64]recordstore.StorableBook),
		customers:   make(map[int64]recordstore.StorableCustomer),
		loans:       make(map[loanKey]recordstore.StorableLoan),
		failures:    make(map[string][]error),
		calls:       make(map[string]int),
		consistency: make(map[string]recordstore.ConsistencyLevel),
		hooks:       make(map[string]func(*Store)),
	}
}

// FailNext makes the next calls of operation return errs in order, one per call.
func (s *Store) FailNext(operation string, errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[operation] = append(s.failures[operation], errs...)
}

// BeforeNext runs hook once, right before the next call of operation touches the data.
// Tests use it to simulate a concurrent write between a read and a conditional write.
func (s *Store) BeforeNext(operation string, hook func(*Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks[operation] = hook
}

// Calls returns how often operation was invoked.
func (s *Store) Calls(operation string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[operation]
}

// ConsistencyOf returns the consistency level the last call of operation asked for.
func (s *Store) ConsistencyOf(operation string) recordstore.ConsistencyLevel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.consistency[operation]
}

// enter counts the call, runs a pending hook and pops a pending failure. Callers must hold mu.
func (s *Store) enter(ctx context.Context, operation string) error {
	s.calls[operation]++
	s.consistency[operation] = recordstore.GetConsistencyLevel(ctx)

	if hook, ok := s.hooks[operation]; ok {
		delete(s.hooks, operation)
		hook(s)
	}

	if pending := s.failures[operation]; len(pending) > 0 {
		s.failures[operation] = pending[1:]
		return pending[0]
	}

	return nil
}

/*** Seeding helpers, usable from hooks (they don't lock) ***/

// PutBook stores book as is. A zero ID gets the next identity value.
func (s *Store) PutBook(book recordstore.StorableBook) int64 {
	if book.ID == 0 {
		s.nextBookID++
		book.ID = s.nextBookID
	} else if book.ID > s.nextBookID {
		s.nextBookID = book.ID
	}

	if book.Status == "" {
		book.Status = recordstore.BookStatusAvailable
	}

	s.books[book.ID] = book

	return book.ID
}

// PutCustomer stores customer as is. A zero ID gets the next identity value.
func (s *Store) PutCustomer(customer recordstore.StorableCustomer) int64 {
	if customer.ID == 0 {
		s.nextCustomerID++
		customer.ID = s.nextCustomerID
	} else if customer.ID > s.nextCustomerID {
		s.nextCustomerID = customer.ID
	}

	s.customers[customer.ID] = customer

	return customer.ID
}

// PutLoan stores loan and marks its book loaned.
func (s *Store) PutLoan(loan recordstore.StorableLoan) {
	s.loans[loanKey{loan.CustomerID, loan.BookID}] = loan

	if book, ok := s.books[loan.BookID]; ok {
		book.Status = recordstore.BookStatusLoaned
		s.books[loan.BookID] = book
	}
}

/*** Snapshot accessors for assertions ***/

// Book returns the stored book and whether it exists.
func (s *Store) Book(id int64) (recordstore.StorableBook, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]

	return book, ok
}

// Customer returns the stored customer and whether it exists.
func (s *Store) Customer(id int64) (recordstore.StorableCustomer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]

	return customer, ok
}

// Loan returns the open loan for the pair and whether it exists.
func (s *Store) Loan(customerID, bookID int64) (recordstore.StorableLoan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, ok := s.loans[loanKey{customerID, bookID}]

	return loan, ok
}

// LateLoanRecords returns a copy of the late-loan audit trail.
func (s *Store) LateLoanRecords() []recordstore.StorableLateLoan {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordstore.StorableLateLoan(nil), s.lateLoans...)
}

/*** Reads ***/

// FindBookByID returns the book or recordstore.ErrRecordNotFound.
func (s *Store) FindBookByID(ctx context.Context, id int64) (recordstore.StorableBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpFindBookByID); err != nil {
		return recordstore.StorableBook{}, err
	}

	book, ok := s.books[id]
	if !ok {
		return recordstore.StorableBook{}, recordstore.ErrRecordNotFound
	}

	return book, nil
}

// FindCustomerByID returns the customer or recordstore.ErrRecordNotFound.
func (s *Store) FindCustomerByID(ctx context.Context, id int64) (recordstore.StorableCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpFindCustomerByID); err != nil {
		return recordstore.StorableCustomer{}, err
	}

	customer, ok := s.customers[id]
	if !ok {
		return recordstore.StorableCustomer{}, recordstore.ErrRecordNotFound
	}

	return customer, nil
}

// FindOpenLoan returns the open loan or recordstore.ErrRecordNotFound.
func (s *Store) FindOpenLoan(ctx context.Context, customerID int64, bookID int64) (recordstore.StorableLoan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpFindOpenLoan); err != nil {
		return recordstore.StorableLoan{}, err
	}

	loan, ok := s.loans[loanKey{customerID, bookID}]
	if !ok {
		return recordstore.StorableLoan{}, recordstore.ErrRecordNotFound
	}

	return loan, nil
}

// CountOpenLoansOfCustomer counts the open loans of the customer.
func (s *Store) CountOpenLoansOfCustomer(ctx context.Context, customerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpCountOpenLoansOfCustomer); err != nil {
		return 0, err
	}

	var count int64
	for key := range s.loans {
		if key.customerID == customerID {
			count++
		}
	}

	return count, nil
}

// AllBooks returns all books ordered by id.
func (s *Store) AllBooks(ctx context.Context) ([]recordstore.StorableBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpAllBooks); err != nil {
		return nil, err
	}

	return s.booksMatching(func(recordstore.StorableBook) bool { return true }), nil
}

// FindBooksByTitle returns books whose title contains term, ignoring case.
func (s *Store) FindBooksByTitle(ctx context.Context, term string) ([]recordstore.StorableBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpFindBooksByTitle); err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)

	return s.booksMatching(func(book recordstore.StorableBook) bool {
		return strings.Contains(strings.ToLower(book.Title), needle)
	}), nil
}

func (s *Store) booksMatching(match func(recordstore.StorableBook) bool) []recordstore.StorableBook {
	books := make([]recordstore.StorableBook, 0, len(s.books))
	for _, book := range s.books {
		if match(book) {
			books = append(books, book)
		}
	}

	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })

	return books
}

// AllCustomers returns all customers ordered by id.
func (s *Store) AllCustomers(ctx context.Context) ([]recordstore.StorableCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpAllCustomers); err != nil {
		return nil, err
	}

	return s.customersMatching(func(recordstore.StorableCustomer) bool { return true }), nil
}

// FindCustomersByName returns customers whose name contains term, ignoring case.
func (s *Store) FindCustomersByName(ctx context.Context, term string) ([]recordstore.StorableCustomer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpFindCustomersByName); err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)

	return s.customersMatching(func(customer recordstore.StorableCustomer) bool {
		return strings.Contains(strings.ToLower(customer.Name), needle)
	}), nil
}

func (s *Store) customersMatching(match func(recordstore.StorableCustomer) bool) []recordstore.StorableCustomer {
	customers := make([]recordstore.StorableCustomer, 0, len(s.customers))
	for _, customer := range s.customers {
		if match(customer) {
			customers = append(customers, customer)
		}
	}

	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })

	return customers
}

// OpenLoans returns all open loans joined with names, ordered by loan date then book id.
func (s *Store) OpenLoans(ctx context.Context) ([]recordstore.StorableOpenLoan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpOpenLoans); err != nil {
		return nil, err
	}

	return s.openLoansMatching(func(recordstore.StorableLoan) bool { return true }), nil
}

// OpenLoansOfCustomer returns the open loans of one customer.
func (s *Store) OpenLoansOfCustomer(ctx context.Context, customerID int64) ([]recordstore.StorableOpenLoan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpOpenLoansOfCustomer); err != nil {
		return nil, err
	}

	return s.openLoansMatching(func(loan recordstore.StorableLoan) bool {
		return loan.CustomerID == customerID
	}), nil
}

func (s *Store) openLoansMatching(match func(recordstore.StorableLoan) bool) []recordstore.StorableOpenLoan {
	loans := make([]recordstore.StorableOpenLoan, 0, len(s.loans))
	for _, loan := range s.loans {
		if !match(loan) {
			continue
		}

		book := s.books[loan.BookID]
		loans = append(loans, recordstore.StorableOpenLoan{
			StorableLoan: loan,
			CustomerName: s.customers[loan.CustomerID].Name,
			BookTitle:    book.Title,
			LoanType:     book.LoanType,
		})
	}

	sort.Slice(loans, func(i, j int) bool {
		if !loans[i].LoanedOn.Equal(loans[j].LoanedOn) {
			return loans[i].LoanedOn.Before(loans[j].LoanedOn)
		}

		return loans[i].BookID < loans[j].BookID
	})

	return loans
}

// LateLoans returns the late-loan records in insertion order.
func (s *Store) LateLoans(ctx context.Context) ([]recordstore.StorableLateLoan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpLateLoans); err != nil {
		return nil, err
	}

	return append(make([]recordstore.StorableLateLoan, 0, len(s.lateLoans)), s.lateLoans...), nil
}

/*** Writes ***/

// InsertBook stores a new book and returns its id.
func (s *Store) InsertBook(ctx context.Context, book recordstore.StorableBook) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpInsertBook); err != nil {
		return 0, err
	}

	book.ID = 0

	return s.PutBook(book), nil
}

// InsertCustomer stores a new customer and returns its id.
func (s *Store) InsertCustomer(ctx context.Context, customer recordstore.StorableCustomer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpInsertCustomer); err != nil {
		return 0, err
	}

	customer.ID = 0

	return s.PutCustomer(customer), nil
}

// LendBook flips an available book to loaned and stores the loan.
// A book that is missing or not available yields recordstore.ErrConcurrencyConflict,
// a missing customer yields recordstore.ErrReferencedRecordMissing.
func (s *Store) LendBook(ctx context.Context, loan recordstore.StorableLoan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpLendBook); err != nil {
		return err
	}

	book, ok := s.books[loan.BookID]
	if !ok || book.Status != recordstore.BookStatusAvailable {
		return recordstore.ErrConcurrencyConflict
	}

	if _, customerExists := s.customers[loan.CustomerID]; !customerExists {
		return recordstore.ErrReferencedRecordMissing
	}

	s.PutLoan(loan)

	return nil
}

// ReturnBook deletes the loan, flips the book to available and appends lateLoan if given.
// A missing loan yields recordstore.ErrConcurrencyConflict.
func (s *Store) ReturnBook(ctx context.Context, customerID int64, bookID int64, lateLoan *recordstore.StorableLateLoan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpReturnBook); err != nil {
		return err
	}

	key := loanKey{customerID, bookID}
	if _, ok := s.loans[key]; !ok {
		return recordstore.ErrConcurrencyConflict
	}

	delete(s.loans, key)

	if book, ok := s.books[bookID]; ok {
		book.Status = recordstore.BookStatusAvailable
		s.books[bookID] = book
	}

	if lateLoan != nil {
		s.lateLoans = append(s.lateLoans, *lateLoan)
	}

	return nil
}

// DeleteAvailableBook deletes the book while it is available, else recordstore.ErrConcurrencyConflict.
func (s *Store) DeleteAvailableBook(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpDeleteAvailableBook); err != nil {
		return err
	}

	book, ok := s.books[id]
	if !ok || book.Status != recordstore.BookStatusAvailable {
		return recordstore.ErrConcurrencyConflict
	}

	delete(s.books, id)

	return nil
}

// DeleteCustomerWithoutLoans deletes the customer while they have no open loan,
// else recordstore.ErrConcurrencyConflict.
func (s *Store) DeleteCustomerWithoutLoans(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx, OpDeleteCustomerWithoutLoans); err != nil {
		return err
	}

	if _, ok := s.customers[id]; !ok {
		return recordstore.ErrConcurrencyConflict
	}

	for key := range s.loans {
		if key.customerID == id {
			return recordstore.ErrConcurrencyConflict
		}
	}

	delete(s.customers, id)

	return nil
}

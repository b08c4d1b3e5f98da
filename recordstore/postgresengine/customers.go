package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-records/recordstore"
	"github.com/AntonStoeckl/library-records/recordstore/postgresengine/internal/adapters"
)

const (
	operationFindCustomerByID           = "find_customer_by_id"
	operationAllCustomers               = "all_customers"
	operationFindCustomersByName        = "find_customers_by_name"
	operationInsertCustomer             = "insert_customer"
	operationDeleteCustomerWithoutLoans = "delete_customer_without_loans"
)

var customerColumns = []interface{}{colID, colName, colCity, colAge}

func scanCustomer(rows adapters.DBRows, customer *recordstore.StorableCustomer) error {
	return rows.Scan(&customer.ID, &customer.Name, &customer.City, &customer.Age)
}

// FindCustomerByID returns the customer with the given id or recordstore.ErrRecordNotFound.
func (rs *RecordStore) FindCustomerByID(ctx context.Context, id int64) (recordstore.StorableCustomer, error) {
	stmt := rs.builder().
		From(rs.tables.Customers).
		Select(customerColumns...).
		Where(goqu.C(colID).Eq(id))

	var customer recordstore.StorableCustomer

	count, err := rs.queryRows(ctx, operationFindCustomerByID, stmt, func(rows adapters.DBRows) error {
		return scanCustomer(rows, &customer)
	})
	if err != nil {
		return recordstore.StorableCustomer{}, err
	}

	if count == 0 {
		return recordstore.StorableCustomer{}, recordstore.ErrRecordNotFound
	}

	return customer, nil
}

// AllCustomers returns all customers ordered by id.
func (rs *RecordStore) AllCustomers(ctx context.Context) ([]recordstore.StorableCustomer, error) {
	stmt := rs.builder().
		From(rs.tables.Customers).
		Select(customerColumns...).
		Order(goqu.C(colID).Asc())

	return rs.listCustomers(ctx, operationAllCustomers, stmt)
}

// FindCustomersByName returns the customers whose name contains term, ignoring case.
func (rs *RecordStore) FindCustomersByName(ctx context.Context, term string) ([]recordstore.StorableCustomer, error) {
	stmt := rs.builder().
		From(rs.tables.Customers).
		Select(customerColumns...).
		Where(goqu.C(colName).ILike(containsPattern(term))).
		Order(goqu.C(colID).Asc())

	return rs.listCustomers(ctx, operationFindCustomersByName, stmt)
}

func (rs *RecordStore) listCustomers(ctx context.Context, operation string, stmt statement) ([]recordstore.StorableCustomer, error) {
	customers := make([]recordstore.StorableCustomer, 0)

	_, err := rs.queryRows(ctx, operation, stmt, func(rows adapters.DBRows) error {
		var customer recordstore.StorableCustomer
		if scanErr := scanCustomer(rows, &customer); scanErr != nil {
			return scanErr
		}

		customers = append(customers, customer)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// InsertCustomer stores a new customer and returns the generated id.
func (rs *RecordStore) InsertCustomer(ctx context.Context, customer recordstore.StorableCustomer) (int64, error) {
	stmt := rs.builder().
		Insert(rs.tables.Customers).
		Rows(goqu.Record{
			colName: customer.Name,
			colCity: customer.City,
			colAge:  customer.Age,
		}).
		Returning(colID)

	return rs.insertReturningID(ctx, operationInsertCustomer, stmt)
}

// DeleteCustomerWithoutLoans deletes the customer only while no open loan references them.
// Otherwise nothing is deleted and recordstore.ErrConcurrencyConflict is returned.
func (rs *RecordStore) DeleteCustomerWithoutLoans(ctx context.Context, id int64) error {
	openLoans := rs.builder().
		From(rs.tables.Loans).
		Select(colCustomerID).
		Where(goqu.C(colCustomerID).Eq(id))

	stmt := rs.builder().
		Delete(rs.tables.Customers).
		Where(
			goqu.C(colID).Eq(id),
			goqu.C(colID).NotIn(openLoans),
		)

	return rs.execStatement(ctx, operationDeleteCustomerWithoutLoans, stmt, 1)
}

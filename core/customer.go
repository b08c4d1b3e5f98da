package core

// Customer is a registered library user.
type Customer struct {
	ID   CustomerID
	Name string
	City string
	Age  int
}

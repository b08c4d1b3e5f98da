// Package customers implements the Customers read model: all customers, or a name search.
package customers

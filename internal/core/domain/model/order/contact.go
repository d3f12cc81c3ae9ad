package order

import (
	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
)

// Customer is the person who placed the order. It is owned by the customer
// directory and is read-only here.
type Customer struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// FullName returns "First Last".
func (c Customer) FullName() string {
	return kernel.FullName(c.FirstName, c.LastName)
}

// Recipient is the person who receives a delivery.
type Recipient struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	CustomerID *uuid.UUID
	Address    kernel.Address
}

// FullName returns "First Last".
func (r Recipient) FullName() string {
	return kernel.FullName(r.FirstName, r.LastName)
}

// Item is a single product line of an order.
type Item struct {
	Description string
	Quantity    int
	UnitPrice   kernel.Money
	RowTotal    kernel.Money
}

package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by the order desk. None of them is fatal: every
// failing operation leaves the cart, the directories and the history as
// they were before the call.
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidQuantity    = errors.New("quantity must be greater than 0")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNoCustomerSelected = errors.New("no customer selected")
	ErrEmptyCart          = errors.New("cart is empty, nothing to order")
	ErrItemReserved       = errors.New("item is reserved by the open cart")
	ErrInvalidItem        = errors.New("invalid item")
	ErrInvalidCustomer    = errors.New("invalid customer")
	ErrDuplicateID        = errors.New("id already exists")
)

// InsufficientStockError carries the stock that was actually available
// when a reservation was refused. It matches ErrInsufficientStock.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ValidationError names the field rule that a record broke.
type ValidationError struct {
	Kind   error
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func invalid(kind error, reason string) error {
	return &ValidationError{Kind: kind, Reason: reason}
}

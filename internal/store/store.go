package store

import (
	"errors"
	"fmt"
	"iter"

	"github.com/fjod/orderdesk/internal/domain"
)

// Common errors returned by the store
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")

	// ErrStockOverflow matches ErrInvalidQuantity
	ErrStockOverflow = fmt.Errorf("%w: stock would overflow", ErrInvalidQuantity)
)

// ShortageError is returned by Reserve when the requested quantity exceeds
// the stock on hand. It matches ErrInsufficientStock.
type ShortageError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("%v: item %s requested %d, available %d", ErrInsufficientStock, e.ItemID, e.Requested, e.Available)
}

func (e *ShortageError) Unwrap() error {
	return ErrInsufficientStock
}

// DomainError converts directory errors to domain error kinds. Errors it
// does not recognize are returned unchanged.
func DomainError(err error) error {
	var shortage *ShortageError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &shortage):
		return &domain.InsufficientStockError{
			ItemID:    shortage.ItemID,
			Requested: shortage.Requested,
			Available: shortage.Available,
		}
	case errors.Is(err, ErrInsufficientStock):
		return domain.ErrInsufficientStock
	case errors.Is(err, ErrItemNotFound):
		return domain.ErrItemNotFound
	case errors.Is(err, ErrCustomerNotFound):
		return domain.ErrCustomerNotFound
	case errors.Is(err, ErrDuplicateID):
		return domain.ErrDuplicateID
	case errors.Is(err, ErrInvalidQuantity):
		return fmt.Errorf("%w: %s", domain.ErrInvalidQuantity, err)
	default:
		return err
	}
}

// ItemDirectory defines the item catalog operations
type ItemDirectory interface {
	// Find returns the item with the given ID
	Find(id string) (domain.Item, error)

	// FindByName returns the item whose name matches exactly, ignoring case
	FindByName(name string) (domain.Item, error)

	// List returns every item in insertion order
	List() []domain.Item

	// ListAvailable yields items with stock left. The sequence is computed
	// lazily on every iteration and may be ranged over more than once.
	ListAvailable() iter.Seq[domain.Item]

	// Search returns items whose name contains term, ignoring case
	Search(term string) []domain.Item

	// NextID proposes the next free sequential item ID
	NextID() string

	Add(item domain.Item) error

	// Update replaces the descriptive fields and price of an item.
	// Stock is left untouched.
	Update(item domain.Item) (domain.Item, error)

	Delete(id string) error

	// Restock adds units received from outside the order desk
	Restock(id string, quantity int) (domain.Item, error)

	// Reserve takes quantity units out of stock for an open cart.
	// Returns the item as it was before the reservation.
	Reserve(id string, quantity int) (domain.Item, error)

	// Release puts quantity previously reserved units back into stock
	Release(id string, quantity int) (domain.Item, error)
}

// CustomerDirectory defines the customer directory operations
type CustomerDirectory interface {
	Find(id string) (domain.Customer, error)

	// Lookup matches an email exactly, then an ID, ignoring case
	Lookup(term string) (domain.Customer, error)

	List() []domain.Customer

	// Search returns customers whose first name, last name or ID contains
	// term, ignoring case
	Search(term string) []domain.Customer

	NextID() string
	Add(customer domain.Customer) error
	Update(customer domain.Customer) (domain.Customer, error)
	Delete(id string) error
}

package store

import (
	"iter"
	"math"
	"strings"
	"sync"

	"github.com/fjod/orderdesk/internal/domain"
)

// MemoryItemStore implements ItemDirectory with in-memory storage
type MemoryItemStore struct {
	mu    sync.RWMutex
	items map[string]*domain.Item // itemID -> item
	order []string                // itemIDs in insertion order
}

// NewMemoryItemStore creates an item directory holding the given items
func NewMemoryItemStore(items ...domain.Item) (*MemoryItemStore, error) {
	s := &MemoryItemStore{
		items: make(map[string]*domain.Item),
	}
	for _, item := range items {
		if err := s.Add(item); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Find returns a copy of the item with the given ID
func (s *MemoryItemStore) Find(id string) (domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return domain.Item{}, ErrItemNotFound
	}
	return *item, nil
}

func (s *MemoryItemStore) FindByName(name string) (domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	for _, id := range s.order {
		if item := s.items[id]; strings.ToLower(item.Name) == name {
			return *item, nil
		}
	}
	return domain.Item{}, ErrItemNotFound
}

func (s *MemoryItemStore) List() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Item, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.items[id])
	}
	return result
}

// ListAvailable yields items with stock left. The lock is only held while
// reading a single entry, so callers may reserve stock inside the loop.
func (s *MemoryItemStore) ListAvailable() iter.Seq[domain.Item] {
	return func(yield func(domain.Item) bool) {
		s.mu.RLock()
		ids := make([]string, len(s.order))
		copy(ids, s.order)
		s.mu.RUnlock()

		for _, id := range ids {
			item, err := s.Find(id)
			if err != nil || !item.Available() {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

func (s *MemoryItemStore) Search(term string) []domain.Item {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Item, 0)
	for _, id := range s.order {
		if item := s.items[id]; strings.Contains(strings.ToLower(item.Name), term) {
			result = append(result, *item)
		}
	}
	return result
}

func (s *MemoryItemStore) NextID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NextSequentialID(ItemIDPrefix, s.order)
}

// Add registers a new item
func (s *MemoryItemStore) Add(item domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return ErrDuplicateID
	}
	s.items[item.ID] = &item
	s.order = append(s.order, item.ID)
	return nil
}

// Update replaces name, category, description and price of an existing item
func (s *MemoryItemStore) Update(item domain.Item) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.items[item.ID]
	if !exists {
		return domain.Item{}, ErrItemNotFound
	}

	// stock is owned by reservations and restocks
	item.StockQuantity = existing.StockQuantity
	if err := item.Validate(); err != nil {
		return domain.Item{}, err
	}

	*existing = item
	return *existing, nil
}

func (s *MemoryItemStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ErrItemNotFound
	}
	delete(s.items, id)
	s.order = removeID(s.order, id)
	return nil
}

// Restock adds units to the stock on hand
func (s *MemoryItemStore) Restock(id string, quantity int) (domain.Item, error) {
	if quantity <= 0 {
		return domain.Item{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return domain.Item{}, ErrItemNotFound
	}
	if quantity > math.MaxInt-item.StockQuantity {
		return domain.Item{}, ErrStockOverflow
	}
	item.StockQuantity += quantity
	return *item, nil
}

// Reserve takes units out of stock, refusing to go below zero
func (s *MemoryItemStore) Reserve(id string, quantity int) (domain.Item, error) {
	if quantity <= 0 {
		return domain.Item{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return domain.Item{}, ErrItemNotFound
	}
	if item.StockQuantity < quantity {
		return domain.Item{}, &ShortageError{ItemID: id, Requested: quantity, Available: item.StockQuantity}
	}

	before := *item
	item.StockQuantity -= quantity
	return before, nil
}

// Release returns reserved units to stock
func (s *MemoryItemStore) Release(id string, quantity int) (domain.Item, error) {
	if quantity <= 0 {
		return domain.Item{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return domain.Item{}, ErrItemNotFound
	}
	if quantity > math.MaxInt-item.StockQuantity {
		return domain.Item{}, ErrStockOverflow
	}
	item.StockQuantity += quantity
	return *item, nil
}

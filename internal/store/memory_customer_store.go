package store

import (
	"strings"
	"sync"

	"github.com/fjod/orderdesk/internal/domain"
)

// MemoryCustomerStore implements CustomerDirectory with in-memory storage
type MemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
	order     []string
}

func NewMemoryCustomerStore(customers ...domain.Customer) (*MemoryCustomerStore, error) {
	s := &MemoryCustomerStore{
		customers: make(map[string]*domain.Customer),
	}
	for _, c := range customers {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemoryCustomerStore) Find(id string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.customers[id]
	if !exists {
		return domain.Customer{}, ErrCustomerNotFound
	}
	return *c, nil
}

// Lookup finds the customer whose email matches term exactly, ignoring
// case, and falls back to an exact ID match.
func (s *MemoryCustomerStore) Lookup(term string) (domain.Customer, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return domain.Customer{}, ErrCustomerNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if c := s.customers[id]; strings.ToLower(c.Email) == term {
			return *c, nil
		}
	}
	for _, id := range s.order {
		if strings.ToLower(id) == term {
			return *s.customers[id], nil
		}
	}
	return domain.Customer{}, ErrCustomerNotFound
}

func (s *MemoryCustomerStore) List() []domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Customer, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.customers[id])
	}
	return result
}

func (s *MemoryCustomerStore) Search(term string) []domain.Customer {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Customer, 0)
	for _, id := range s.order {
		c := s.customers[id]
		if strings.Contains(strings.ToLower(c.FirstName), term) ||
			strings.Contains(strings.ToLower(c.LastName), term) ||
			strings.Contains(strings.ToLower(c.ID), term) {
			result = append(result, *c)
		}
	}
	return result
}

func (s *MemoryCustomerStore) NextID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NextSequentialID(CustomerIDPrefix, s.order)
}

func (s *MemoryCustomerStore) Add(customer domain.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[customer.ID]; exists {
		return ErrDuplicateID
	}
	s.customers[customer.ID] = &customer
	s.order = append(s.order, customer.ID)
	return nil
}

func (s *MemoryCustomerStore) Update(customer domain.Customer) (domain.Customer, error) {
	if err := customer.Validate(); err != nil {
		return domain.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.customers[customer.ID]
	if !exists {
		return domain.Customer{}, ErrCustomerNotFound
	}
	*existing = customer
	return *existing, nil
}

func (s *MemoryCustomerStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[id]; !exists {
		return ErrCustomerNotFound
	}
	delete(s.customers, id)
	s.order = removeID(s.order, id)
	return nil
}

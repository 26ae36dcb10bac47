package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fjod/orderdesk/internal/domain"
)

const OrderIDPrefix = "OD"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrDuplicateOrderID = errors.New("order id already recorded")
	ErrNoLines          = errors.New("order has no lines")
)

// OrderHistory is the append-only log of committed order lines
type OrderHistory interface {
	// Append records all lines of one order atomically. Lines must share
	// a single order ID that is not yet in the history.
	Append(lines ...domain.OrderLine) error
	Lines() []domain.OrderLine
	Orders() []domain.Order
	Order(orderID string) (domain.Order, error)
	// NextOrderID proposes the next sequential order ID (OD001, OD002, ...)
	NextOrderID() string
}

// MemoryHistory implements OrderHistory in memory
type MemoryHistory struct {
	mu     sync.RWMutex
	lines  []domain.OrderLine
	orders map[string]struct{}
	ids    []string // order IDs in commit order
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{
		orders: make(map[string]struct{}),
	}
}

func (h *MemoryHistory) Append(lines ...domain.OrderLine) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	orderID := lines[0].OrderID
	for _, line := range lines[1:] {
		if line.OrderID != orderID {
			return fmt.Errorf("mixed order ids %q and %q in one append", orderID, line.OrderID)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.orders[orderID]; exists {
		return ErrDuplicateOrderID
	}
	h.orders[orderID] = struct{}{}
	h.ids = append(h.ids, orderID)
	h.lines = append(h.lines, lines...)
	return nil
}

// Lines returns a copy of every recorded line in commit order
func (h *MemoryHistory) Lines() []domain.OrderLine {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]domain.OrderLine, len(h.lines))
	copy(out, h.lines)
	return out
}

func (h *MemoryHistory) Orders() []domain.Order {
	return domain.GroupOrders(h.Lines())
}

func (h *MemoryHistory) Order(orderID string) (domain.Order, error) {
	h.mu.RLock()
	_, exists := h.orders[orderID]
	h.mu.RUnlock()
	if !exists {
		return domain.Order{}, ErrOrderNotFound
	}

	for _, order := range h.Orders() {
		if order.ID == orderID {
			return order, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

// NextOrderID follows the highest recorded OD number, so explicitly chosen
// order IDs never make the proposal collide.
func (h *MemoryHistory) NextOrderID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return domain.NextSequentialID(OrderIDPrefix, h.ids)
}

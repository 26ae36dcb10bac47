// Package cart keeps the lines of the order being built and the stock they
// hold. Every unit in a cart line has been taken out of the item directory;
// removing or clearing a line puts it back exactly once.
package cart

import (
	"errors"
	"fmt"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/store"
	"github.com/shopspring/decimal"
)

// Stock is the part of the item directory the cart writes to
type Stock interface {
	Reserve(id string, quantity int) (domain.Item, error)
	Release(id string, quantity int) (domain.Item, error)
}

// Cart is not safe for concurrent use; callers serialize access.
type Cart struct {
	stock Stock
	lines []domain.CartLine
	index map[string]int // itemID -> position in lines
}

func New(stock Stock) *Cart {
	return &Cart{
		stock: stock,
		index: make(map[string]int),
	}
}

// AddItem reserves quantity units of the item and records them on the cart,
// merging into the existing line for the same item.
func (c *Cart) AddItem(itemID string, quantity int) (domain.CartLine, error) {
	if quantity <= 0 {
		return domain.CartLine{}, domain.ErrInvalidQuantity
	}

	item, err := c.stock.Reserve(itemID, quantity)
	if err != nil {
		return domain.CartLine{}, store.DomainError(err)
	}

	if i, ok := c.index[itemID]; ok {
		c.lines[i].Merge(quantity)
		return c.lines[i], nil
	}

	line := domain.NewCartLine(item, quantity)
	c.index[itemID] = len(c.lines)
	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveLine returns the line's units to stock and drops the line
func (c *Cart) RemoveLine(itemID string) (domain.CartLine, error) {
	i, ok := c.index[itemID]
	if !ok {
		return domain.CartLine{}, domain.ErrLineNotFound
	}

	line := c.lines[i]
	if _, err := c.stock.Release(line.ItemID, line.Quantity); err != nil {
		return domain.CartLine{}, store.DomainError(err)
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.reindex()
	return line, nil
}

// Clear empties the cart and returns the lines it held. With restoreStock
// every line is released first; without it the reserved units stay
// consumed, which is what a committed order wants. The cart is emptied even
// when a release fails; the joined release errors are returned.
func (c *Cart) Clear(restoreStock bool) ([]domain.CartLine, error) {
	removed := c.Lines()

	var errs []error
	if restoreStock {
		for _, line := range removed {
			if _, err := c.stock.Release(line.ItemID, line.Quantity); err != nil {
				errs = append(errs, fmt.Errorf("release %s: %w", line.ItemID, store.DomainError(err)))
			}
		}
	}

	c.lines = nil
	c.index = make(map[string]int)
	return removed, errors.Join(errs...)
}

// GrandTotal sums the line totals
func (c *Cart) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

// Lines returns a copy of the cart lines in the order they were added
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(itemID string) (domain.CartLine, bool) {
	i, ok := c.index[itemID]
	if !ok {
		return domain.CartLine{}, false
	}
	return c.lines[i], true
}

// Reserved is the number of units of the item held by the cart
func (c *Cart) Reserved(itemID string) int {
	line, _ := c.Line(itemID)
	return line.Quantity
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) reindex() {
	c.index = make(map[string]int, len(c.lines))
	for i, line := range c.lines {
		c.index[line.ItemID] = i
	}
}

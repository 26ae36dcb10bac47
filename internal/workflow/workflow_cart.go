package workflow

import (
	"github.com/fjod/orderdesk/internal/domain"
	"go.uber.org/zap"
)

// SelectCustomer sets the customer the open order is for
func (w *Workflow) SelectCustomer(customerID string) (domain.Customer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, err := w.customers.Find(customerID)
	if err != nil {
		return domain.Customer{}, TranslateError(err)
	}
	w.customerID = c.ID
	return c, nil
}

// AddItem reserves stock for the open order
func (w *Workflow) AddItem(itemID string, quantity int) (domain.CartLine, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	line, err := w.cart.AddItem(itemID, quantity)
	if err != nil {
		return domain.CartLine{}, TranslateError(err)
	}
	w.moveTo(domain.SessionBuilding)

	w.logger.Debug("item reserved",
		zap.String("session_id", w.session.String()),
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity),
		zap.Int("line_quantity", line.Quantity),
	)
	return line, nil
}

// RemoveCartLine drops a line and returns its units to stock. The caller
// confirms with the user before calling.
func (w *Workflow) RemoveCartLine(itemID string) (domain.CartLine, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	line, err := w.cart.RemoveLine(itemID)
	if err != nil {
		return domain.CartLine{}, TranslateError(err)
	}
	if w.cart.IsEmpty() {
		w.moveTo(domain.SessionEmpty)
	}

	w.logger.Debug("cart line removed",
		zap.String("session_id", w.session.String()),
		zap.String("item_id", itemID),
		zap.Int("restored", line.Quantity),
	)
	return line, nil
}

package workflow

import "github.com/fjod/orderdesk/internal/domain"

// DeleteItem removes an item from the catalog unless the open cart holds
// units of it.
func (w *Workflow) DeleteItem(itemID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cart.Reserved(itemID) > 0 {
		return domain.ErrItemReserved
	}
	return TranslateError(w.items.Delete(itemID))
}

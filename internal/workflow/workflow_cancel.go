package workflow

import (
	"github.com/fjod/orderdesk/internal/domain"
	"go.uber.org/zap"
)

// CancelResult reports what a cancel request did
type CancelResult struct {
	Outcome       domain.CancelOutcome `json:"outcome"`
	Lines         []domain.CartLine    `json:"lines"`
	RestoredUnits int                  `json:"restored_units"`
}

// CancelOrder abandons the open cart and returns every reserved unit to
// stock. An empty cart is reported as NothingToCancel, which is not an
// error. The caller confirms with the user before calling.
func (w *Workflow) CancelOrder() (CancelResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cart.IsEmpty() {
		return CancelResult{Outcome: domain.CancelOutcomeNothingToCancel, Lines: []domain.CartLine{}}, nil
	}

	lines, err := w.cart.Clear(true)
	restored := 0
	for _, line := range lines {
		restored += line.Quantity
	}

	w.logger.Info("order cancelled",
		zap.String("session_id", w.session.String()),
		zap.Int("lines", len(lines)),
		zap.Int("restored_units", restored),
	)
	w.moveTo(domain.SessionEmpty)
	w.startSession()

	return CancelResult{
		Outcome:       domain.CancelOutcomeCancelled,
		Lines:         lines,
		RestoredUnits: restored,
	}, err
}

package workflow

import (
	"context"
	"time"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/events"
	"go.uber.org/zap"
)

// PlaceOrderRequest carries the order header. Empty fields fall back to the
// next sequential order ID, today's date and the selected customer.
type PlaceOrderRequest struct {
	OrderID    string
	Date       time.Time
	CustomerID string
}

// Receipt describes a committed order
type Receipt struct {
	SessionID string       `json:"session_id"`
	Order     domain.Order `json:"order"`
}

// PlaceOrder commits the open cart into the order history. Reserved stock
// stays consumed. On any error neither the history nor the cart changes.
func (w *Workflow) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (Receipt, error) {
	receipt, err := w.commit(req)
	if err != nil {
		return Receipt{}, err
	}

	// publishing happens outside the lock and never undoes the commit
	event := events.NewOrderPlaced(receipt.Order, w.now())
	if err := w.publisher.PublishOrderPlaced(ctx, event); err != nil {
		w.logger.Error("failed to publish order event",
			zap.String("order_id", receipt.Order.ID),
			zap.Error(err),
		)
	}
	return receipt, nil
}

func (w *Workflow) commit(req PlaceOrderRequest) (Receipt, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	customerID := req.CustomerID
	if customerID == "" {
		customerID = w.customerID
	}
	if customerID == "" {
		return Receipt{}, domain.ErrNoCustomerSelected
	}
	if w.cart.IsEmpty() {
		return Receipt{}, domain.ErrEmptyCart
	}

	customer, err := w.customers.Find(customerID)
	if err != nil {
		return Receipt{}, TranslateError(err)
	}

	orderID := req.OrderID
	if orderID == "" {
		orderID = w.history.NextOrderID()
	}
	date := req.Date
	if date.IsZero() {
		date = w.now()
	}

	lines := domain.NewOrderLines(orderID, date, customer, w.cart.Lines())
	if err := w.history.Append(lines...); err != nil {
		return Receipt{}, TranslateError(err)
	}

	w.moveTo(domain.SessionCommitted)
	// history now owns the units; nothing goes back to stock
	if _, err := w.cart.Clear(false); err != nil {
		w.logger.Error("clearing committed cart", zap.Error(err))
	}

	receipt := Receipt{
		SessionID: w.session.String(),
		Order:     domain.GroupOrders(lines)[0],
	}
	w.logger.Info("order placed",
		zap.String("session_id", receipt.SessionID),
		zap.String("order_id", orderID),
		zap.String("customer_id", customer.ID),
		zap.Int("lines", len(lines)),
		zap.String("total", receipt.Order.Total.StringFixed(2)),
	)

	w.startSession()
	return receipt, nil
}

// Package workflow runs the order desk: one open cart reserved against the
// item directory, committed into the order history or cancelled back into
// stock.
package workflow

import (
	"slices"
	"sync"
	"time"

	"github.com/fjod/orderdesk/internal/cart"
	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/events"
	"github.com/fjod/orderdesk/internal/history"
	"github.com/fjod/orderdesk/internal/store"
	"github.com/fjod/orderdesk/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Workflow serializes every desk operation behind one mutex, so no caller
// ever sees a cart and a directory that disagree about reserved stock.
type Workflow struct {
	mu sync.Mutex

	items     store.ItemDirectory
	customers store.CustomerDirectory
	history   history.OrderHistory
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time

	cart       *cart.Cart
	session    uuid.UUID
	state      domain.SessionState
	customerID string
}

type Option func(*Workflow)

func WithPublisher(p events.Publisher) Option {
	return func(w *Workflow) { w.publisher = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(w *Workflow) { w.logger = logger.OrNop(l) }
}

// WithClock overrides time.Now for order dates
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func New(items store.ItemDirectory, customers store.CustomerDirectory, h history.OrderHistory, opts ...Option) *Workflow {
	w := &Workflow{
		items:     items,
		customers: customers,
		history:   h,
		publisher: events.NopPublisher{},
		logger:    zap.NewNop(),
		now:       time.Now,
		cart:      cart.New(items),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.startSession()
	return w
}

// CartView is what the order screen renders
type CartView struct {
	SessionID   string              `json:"session_id"`
	State       domain.SessionState `json:"state"`
	Customer    *domain.Customer    `json:"customer,omitempty"`
	Lines       []domain.CartLine   `json:"lines"`
	GrandTotal  decimal.Decimal     `json:"grand_total"`
	NextOrderID string              `json:"next_order_id"`
	Date        string              `json:"date"`
}

func (w *Workflow) View() CartView {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := CartView{
		SessionID:   w.session.String(),
		State:       w.state,
		Lines:       w.cart.Lines(),
		GrandTotal:  w.cart.GrandTotal(),
		NextOrderID: w.history.NextOrderID(),
		Date:        w.now().Format(domain.DateLayout),
	}
	if w.customerID != "" {
		if c, err := w.customers.Find(w.customerID); err == nil {
			view.Customer = &c
		}
	}
	return view
}

// AvailableItems lists items that still have stock, for the item picker
func (w *Workflow) AvailableItems() []domain.Item {
	return slices.Collect(w.items.ListAvailable())
}

// History returns every committed order line
func (w *Workflow) History() []domain.OrderLine {
	return w.history.Lines()
}

func (w *Workflow) Orders() []domain.Order {
	return w.history.Orders()
}

func (w *Workflow) Order(orderID string) (domain.Order, error) {
	order, err := w.history.Order(orderID)
	if err != nil {
		return domain.Order{}, TranslateError(err)
	}
	return order, nil
}

// startSession resets the desk for a new order. Caller holds mu or is New.
func (w *Workflow) startSession() {
	w.session = uuid.New()
	w.state = domain.SessionEmpty
	w.customerID = ""
}

// moveTo changes the session state, ignoring transitions the state machine
// does not allow.
func (w *Workflow) moveTo(next domain.SessionState) {
	if !w.state.CanTransitionTo(next) {
		w.logger.Warn("illegal session transition",
			zap.String("session_id", w.session.String()),
			zap.Stringer("from", w.state),
			zap.Stringer("to", next),
		)
		return
	}
	w.state = next
}

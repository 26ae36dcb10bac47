package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/fjod/orderdesk/internal/events"
	"github.com/fjod/orderdesk/internal/history"
	"github.com/fjod/orderdesk/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var today = time.Date(2026, 10, 17, 10, 30, 0, 0, time.UTC)

type mockPublisher struct {
	events []events.OrderPlaced
	err    error
}

func (m *mockPublisher) PublishOrderPlaced(_ context.Context, e events.OrderPlaced) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type fixture struct {
	wf        *Workflow
	items     *store.MemoryItemStore
	customers *store.MemoryCustomerStore
	history   *history.MemoryHistory
	publisher *mockPublisher
}

func setup(t *testing.T, opts ...Option) fixture {
	items, err := store.NewMemoryItemStore(
		domain.Item{ID: "I001", Name: "Brake Pad", Category: "car", Description: "Nissan car", UnitPrice: decimal.NewFromInt(2500), StockQuantity: 10},
		domain.Item{ID: "I002", Name: "Brake Osher", Category: "lorry", Description: "Isuzu lorry", UnitPrice: decimal.NewFromInt(450), StockQuantity: 20},
	)
	require.NoError(t, err)
	customers, err := store.NewMemoryCustomerStore(
		domain.Customer{ID: "C001", FirstName: "Pasindu", LastName: "Madushan", Email: "pasindu24hh@gmail.com", Phone: "0763445366", Address: "Bandaragama"},
		domain.Customer{ID: "C002", FirstName: "Ashan", LastName: "Peris", Email: "ashan@gmail.com", Phone: "0745567888", Address: "Piliyandala"},
	)
	require.NoError(t, err)

	h := history.NewMemoryHistory()
	pub := &mockPublisher{}
	opts = append([]Option{WithPublisher(pub), WithClock(func() time.Time { return today })}, opts...)
	return fixture{
		wf:        New(items, customers, h, opts...),
		items:     items,
		customers: customers,
		history:   h,
		publisher: pub,
	}
}

func (f fixture) stock(t *testing.T, id string) int {
	item, err := f.items.Find(id)
	require.NoError(t, err)
	return item.StockQuantity
}

func TestWorkflow_PlaceOrder_CommitIsPermanent(t *testing.T) {
	f := setup(t)

	_, err := f.wf.SelectCustomer("C001")
	require.NoError(t, err)
	_, err = f.wf.AddItem("I001", 3)
	require.NoError(t, err)

	receipt, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{})
	require.NoError(t, err)

	assert.Equal(t, "OD001", receipt.Order.ID)
	assert.Equal(t, "2026-10-17", receipt.Order.Date)
	assert.Equal(t, "Pasindu Madushan", receipt.Order.CustomerName)
	assert.True(t, decimal.NewFromInt(7500).Equal(receipt.Order.Total))

	lines := f.history.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "I001", lines[0].ItemID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(2500).Equal(lines[0].UnitPrice))
	assert.Equal(t, "Bandaragama", lines[0].CustomerAddress)

	// the 3 units are not returned
	assert.Equal(t, 7, f.stock(t, "I001"))

	view := f.wf.View()
	assert.Empty(t, view.Lines)
	assert.Nil(t, view.Customer)
	assert.Equal(t, domain.SessionEmpty, view.State)
	assert.NotEqual(t, receipt.SessionID, view.SessionID)
	assert.Equal(t, "OD002", view.NextOrderID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "OD001", f.publisher.events[0].OrderID)
}

func TestWorkflow_PlaceOrder_OneLinePerCartLine(t *testing.T) {
	f := setup(t)

	_, _ = f.wf.AddItem("I001", 2)
	_, _ = f.wf.AddItem("I002", 5)
	_, _ = f.wf.AddItem("I001", 1)

	receipt, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{OrderID: "OD100", CustomerID: "C002"})
	require.NoError(t, err)

	assert.Equal(t, "OD100", receipt.Order.ID)
	require.Len(t, receipt.Order.Lines, 2)
	assert.Equal(t, 3, receipt.Order.Lines[0].Quantity)
	assert.Equal(t, 5, receipt.Order.Lines[1].Quantity)
	assert.True(t, decimal.NewFromInt(9750).Equal(receipt.Order.Total))
	assert.Len(t, f.history.Lines(), 2)
}

func TestWorkflow_PlaceOrder_Preconditions(t *testing.T) {
	t.Run("no customer selected", func(t *testing.T) {
		f := setup(t)
		_, _ = f.wf.AddItem("I001", 1)

		_, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{})
		assert.ErrorIs(t, err, domain.ErrNoCustomerSelected)
		assert.Empty(t, f.history.Lines())
		assert.Len(t, f.wf.View().Lines, 1)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := setup(t)
		_, _ = f.wf.SelectCustomer("C001")

		_, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{})
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
		assert.Empty(t, f.history.Lines())
		assert.Empty(t, f.publisher.events)
	})

	t.Run("customer deleted after selection", func(t *testing.T) {
		f := setup(t)
		_, _ = f.wf.SelectCustomer("C001")
		_, _ = f.wf.AddItem("I001", 1)
		require.NoError(t, f.customers.Delete("C001"))

		_, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{})
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
		assert.Empty(t, f.history.Lines())
		assert.Equal(t, 9, f.stock(t, "I001"))
	})

	t.Run("duplicate order id", func(t *testing.T) {
		f := setup(t)
		_, _ = f.wf.AddItem("I001", 1)
		_, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{OrderID: "OD001", CustomerID: "C001"})
		require.NoError(t, err)

		_, _ = f.wf.AddItem("I002", 1)
		_, err = f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{OrderID: "OD001", CustomerID: "C001"})
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
		assert.Len(t, f.history.Lines(), 1)
		assert.Len(t, f.wf.View().Lines, 1)
	})
}

func TestWorkflow_PlaceOrder_PublishFailureKeepsCommit(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	f := setup(t, WithLogger(zap.New(core)))
	f.publisher.err = errors.New("broker down")

	_, _ = f.wf.AddItem("I001", 2)
	receipt, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{CustomerID: "C001"})
	require.NoError(t, err)

	assert.Equal(t, "OD001", receipt.Order.ID)
	assert.Len(t, f.history.Lines(), 1)
	assert.Equal(t, 1, logs.FilterMessage("failed to publish order event").Len())
}

func TestWorkflow_PlaceOrder_AutomaticIDAfterExplicitID(t *testing.T) {
	f := setup(t)

	_, err := f.wf.AddItem("I001", 1)
	require.NoError(t, err)
	_, err = f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{OrderID: "OD002", CustomerID: "C001"})
	require.NoError(t, err)

	for _, want := range []string{"OD003", "OD004"} {
		_, err = f.wf.AddItem("I002", 1)
		require.NoError(t, err)
		receipt, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{CustomerID: "C002"})
		require.NoError(t, err)
		assert.Equal(t, want, receipt.Order.ID)
	}
	assert.Len(t, f.wf.Orders(), 3)
}

func TestWorkflow_CancelOrder_RestoresStock(t *testing.T) {
	f := setup(t)

	_, _ = f.wf.SelectCustomer("C001")
	_, err := f.wf.AddItem("I001", 3)
	require.NoError(t, err)
	sessionBefore := f.wf.View().SessionID

	result, err := f.wf.CancelOrder()
	require.NoError(t, err)

	assert.Equal(t, domain.CancelOutcomeCancelled, result.Outcome)
	assert.Equal(t, 3, result.RestoredUnits)
	assert.Equal(t, 10, f.stock(t, "I001"))
	assert.Empty(t, f.history.Lines())

	view := f.wf.View()
	assert.Empty(t, view.Lines)
	assert.Nil(t, view.Customer)
	assert.NotEqual(t, sessionBefore, view.SessionID)
}

func TestWorkflow_CancelOrder_NothingToCancel(t *testing.T) {
	f := setup(t)

	result, err := f.wf.CancelOrder()
	require.NoError(t, err)
	assert.Equal(t, domain.CancelOutcomeNothingToCancel, result.Outcome)

	// cancelling twice does not release stock twice
	_, _ = f.wf.AddItem("I002", 4)
	_, err = f.wf.CancelOrder()
	require.NoError(t, err)
	result, err = f.wf.CancelOrder()
	require.NoError(t, err)
	assert.Equal(t, domain.CancelOutcomeNothingToCancel, result.Outcome)
	assert.Equal(t, 20, f.stock(t, "I002"))
}

func TestWorkflow_AddItem_Errors(t *testing.T) {
	f := setup(t)

	_, err := f.wf.AddItem("I001", 12)
	var shortage *domain.InsufficientStockError
	require.True(t, errors.As(err, &shortage))
	assert.Equal(t, 10, shortage.Available)

	_, err = f.wf.AddItem("I001", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.wf.AddItem("I404", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	assert.Equal(t, domain.SessionEmpty, f.wf.View().State)
	assert.Equal(t, 10, f.stock(t, "I001"))
}

func TestWorkflow_RemoveCartLine(t *testing.T) {
	f := setup(t)

	_, _ = f.wf.AddItem("I001", 10)
	assert.NotContains(t, ids(f.wf.AvailableItems()), "I001")
	assert.Equal(t, domain.SessionBuilding, f.wf.View().State)

	line, err := f.wf.RemoveCartLine("I001")
	require.NoError(t, err)
	assert.Equal(t, 10, line.Quantity)
	assert.Equal(t, 10, f.stock(t, "I001"))
	assert.Contains(t, ids(f.wf.AvailableItems()), "I001")
	assert.Equal(t, domain.SessionEmpty, f.wf.View().State)

	_, err = f.wf.RemoveCartLine("I001")
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
	assert.Equal(t, 10, f.stock(t, "I001"))
}

func TestWorkflow_SelectCustomer(t *testing.T) {
	f := setup(t)

	_, err := f.wf.SelectCustomer("C404")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	c, err := f.wf.SelectCustomer("C002")
	require.NoError(t, err)
	assert.Equal(t, "Ashan Peris", c.FullName())

	view := f.wf.View()
	require.NotNil(t, view.Customer)
	assert.Equal(t, "C002", view.Customer.ID)
	assert.Equal(t, "2026-10-17", view.Date)
}

func TestWorkflow_DeleteItem(t *testing.T) {
	f := setup(t)

	_, _ = f.wf.AddItem("I001", 1)
	assert.ErrorIs(t, f.wf.DeleteItem("I001"), domain.ErrItemReserved)

	require.NoError(t, f.wf.DeleteItem("I002"))
	assert.ErrorIs(t, f.wf.DeleteItem("I002"), domain.ErrItemNotFound)
}

func TestWorkflow_Orders(t *testing.T) {
	f := setup(t)

	_, _ = f.wf.AddItem("I001", 1)
	_, err := f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{CustomerID: "C001"})
	require.NoError(t, err)
	_, _ = f.wf.AddItem("I002", 2)
	_, err = f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{CustomerID: "C002"})
	require.NoError(t, err)

	orders := f.wf.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "OD002", orders[1].ID)
	assert.Len(t, f.wf.History(), 2)

	order, err := f.wf.Order("OD002")
	require.NoError(t, err)
	assert.Equal(t, "C002", order.CustomerID)

	_, err = f.wf.Order("OD404")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

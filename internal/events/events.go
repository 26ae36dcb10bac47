package events

import (
	"context"
	"time"

	"github.com/fjod/orderdesk/internal/domain"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

const EventTypeOrderPlaced = "order.placed"

type OrderPlacedItem struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderPlaced is published once per committed order
type OrderPlaced struct {
	EventID         string            `json:"event_id"`
	OrderID         string            `json:"order_id"`
	Date            string            `json:"date"`
	CustomerID      string            `json:"customer_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerAddress string            `json:"customer_address"`
	Items           []OrderPlacedItem `json:"items"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	PlacedAt        time.Time         `json:"placed_at"`
}

func NewOrderPlaced(order domain.Order, placedAt time.Time) OrderPlaced {
	items := make([]OrderPlacedItem, len(order.Lines))
	for i, line := range order.Lines {
		items[i] = OrderPlacedItem{
			ItemID:    line.ItemID,
			ItemName:  line.ItemName,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  line.Total(),
		}
	}
	return OrderPlaced{
		EventID:         ulid.Make().String(),
		OrderID:         order.ID,
		Date:            order.Date,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		CustomerAddress: order.CustomerAddress,
		Items:           items,
		TotalAmount:     order.Total,
		PlacedAt:        placedAt,
	}
}

// Publisher delivers order events to downstream consumers
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }
func (NopPublisher) Close() error                                         { return nil }

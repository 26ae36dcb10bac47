package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for order dates
const DateLayout = "2006-01-02"

// OrderLine is the history record of one item of a committed order
type OrderLine struct {
	OrderID         string          `json:"order_id"`
	Date            string          `json:"date"`
	CustomerID      string          `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	ItemID          string          `json:"item_id"`
	ItemName        string          `json:"item_name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
}

func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order groups the history lines that share an order ID
type Order struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	CustomerID      string          `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	Lines           []OrderLine     `json:"lines"`
	Total           decimal.Decimal `json:"total"`
}

// NewOrderLines builds one history line per cart line
func NewOrderLines(orderID string, date time.Time, customer Customer, lines []CartLine) []OrderLine {
	out := make([]OrderLine, len(lines))
	for i, line := range lines {
		out[i] = OrderLine{
			OrderID:         orderID,
			Date:            date.Format(DateLayout),
			CustomerID:      customer.ID,
			CustomerName:    customer.FullName(),
			CustomerAddress: customer.Address,
			ItemID:          line.ItemID,
			ItemName:        line.ItemName,
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
		}
	}
	return out
}

// GroupOrders folds history lines into orders, keeping first-seen order
func GroupOrders(lines []OrderLine) []Order {
	index := make(map[string]int)
	orders := make([]Order, 0)
	for _, line := range lines {
		i, ok := index[line.OrderID]
		if !ok {
			i = len(orders)
			index[line.OrderID] = i
			orders = append(orders, Order{
				ID:              line.OrderID,
				Date:            line.Date,
				CustomerID:      line.CustomerID,
				CustomerName:    line.CustomerName,
				CustomerAddress: line.CustomerAddress,
				Total:           decimal.Zero,
			})
		}
		orders[i].Lines = append(orders[i].Lines, line)
		orders[i].Total = orders[i].Total.Add(line.Total())
	}
	return orders
}

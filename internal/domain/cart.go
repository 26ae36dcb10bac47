package domain

import "github.com/shopspring/decimal"

// CartLine is one reserved item of the order being built. ItemName and
// UnitPrice are frozen when the item is first reserved.
type CartLine struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewCartLine snapshots the item name and price for a first reservation
func NewCartLine(item Item, quantity int) CartLine {
	return CartLine{
		ItemID:    item.ID,
		ItemName:  item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  quantity,
		LineTotal: item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Merge adds quantity to the line at its snapshot price
func (l *CartLine) Merge(quantity int) {
	l.Quantity += quantity
	l.LineTotal = l.LineTotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

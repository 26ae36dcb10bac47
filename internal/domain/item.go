package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry with its current stock level
type Item struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Category      string          `json:"category" yaml:"category"`
	Description   string          `json:"description" yaml:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price" yaml:"unit_price"`
	StockQuantity int             `json:"stock_quantity" yaml:"stock_quantity"`
}

// Available reports whether at least one unit can be reserved
func (i Item) Available() bool {
	return i.StockQuantity > 0
}

// Validate checks the fields a catalog entry must carry
func (i Item) Validate() error {
	switch {
	case strings.TrimSpace(i.ID) == "":
		return invalid(ErrInvalidItem, "id is required")
	case strings.TrimSpace(i.Name) == "":
		return invalid(ErrInvalidItem, "name is required")
	case strings.TrimSpace(i.Category) == "":
		return invalid(ErrInvalidItem, "category is required")
	case strings.TrimSpace(i.Description) == "":
		return invalid(ErrInvalidItem, "description is required")
	case i.UnitPrice.IsNegative():
		return invalid(ErrInvalidItem, "unit_price must not be negative")
	case i.StockQuantity < 0:
		return invalid(ErrInvalidItem, "stock_quantity must not be negative")
	}
	return nil
}

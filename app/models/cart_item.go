package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a line item. It copies the product fields at add time and is
// embedded as-is into orders.
type CartItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	ImageURL  string          `json:"imageUrl"`
	Category  string          `json:"category"`
	AddedAt   time.Time       `json:"addedAt"`
}

func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

func (ci *CartItem) Validate() error {
	var extra []string
	if ci.Price.IsNegative() {
		extra = append(extra, "Price")
	}
	return checkStruct("cart item", ci, extra...)
}

func validateItems(items []CartItem) error {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

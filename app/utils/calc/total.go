package calc

import (
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/shopspring/decimal"
)

// CartTotal is Σ price × quantity over the given items, rounded to cents.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// Average returns sum / n, or zero when n is zero.
func Average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2)
}

package calc

import (
	"testing"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartTotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "a", Price: decimal.NewFromInt(10), Quantity: 2},
		{ProductID: "b", Price: decimal.NewFromInt(5), Quantity: 1},
	}
	assert.True(t, decimal.RequireFromString("25.00").Equal(CartTotal(items)))
	assert.True(t, CartTotal(nil).IsZero())
}

func TestAverage(t *testing.T) {
	assert.True(t, Average(decimal.NewFromInt(10), 0).IsZero())
	assert.Equal(t, "3.33", Average(decimal.NewFromInt(10), 3).StringFixed(2))
}

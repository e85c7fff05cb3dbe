package services

import (
	"testing"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrIncrement(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	product := &models.Product{ID: "p1", Name: "Scarf", Category: models.CategoryClothes, Price: decimal.NewFromInt(12), Stock: 2}

	cart := models.NewCart("u1")
	require.NoError(t, AddOrIncrement(cart, product, now))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, models.CartItem{
		ProductID: "p1",
		Title:     "Scarf",
		Price:     decimal.NewFromInt(12),
		Quantity:  1,
		Category:  models.CategoryClothes,
		AddedAt:   now,
	}, cart.Items[0])

	require.NoError(t, AddOrIncrement(cart, product, now))
	assert.Equal(t, 2, cart.Items[0].Quantity)

	err := AddOrIncrement(cart, product, now)
	assert.True(t, IsStockExceeded(err))
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddOrIncrementOutOfStock(t *testing.T) {
	cart := models.NewCart("u1")
	err := AddOrIncrement(cart, &models.Product{ID: "p1", Stock: 0}, time.Now())

	var stockErr *StockExceededError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "this product is out of stock", stockErr.Error())
	assert.Empty(t, cart.Items)
}

func TestAddOrIncrementNeverExceedsStock(t *testing.T) {
	for stock := 0; stock < 6; stock++ {
		product := &models.Product{ID: "p", Stock: stock}
		cart := models.NewCart("u")
		for i := 0; i < 10; i++ {
			_ = AddOrIncrement(cart, product, time.Now())
		}
		assert.LessOrEqual(t, cart.ItemCount(), stock)
	}
}

func TestSetQuantity(t *testing.T) {
	newCart := func() *models.Cart {
		cart := models.NewCart("u1")
		cart.Items = []models.CartItem{
			{ProductID: "a", Quantity: 1},
			{ProductID: "b", Quantity: 3},
		}
		return cart
	}

	t.Run("sets within stock", func(t *testing.T) {
		cart := newCart()
		clamped, err := SetQuantity(cart, 1, 4, 10)
		require.NoError(t, err)
		assert.False(t, clamped)
		assert.Equal(t, 4, cart.Items[1].Quantity)
	})

	t.Run("clamps to stock", func(t *testing.T) {
		cart := newCart()
		clamped, err := SetQuantity(cart, 0, 9, 5)
		require.NoError(t, err)
		assert.True(t, clamped)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("below one removes", func(t *testing.T) {
		cart := newCart()
		_, err := SetQuantity(cart, 0, 0, 5)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "b", cart.Items[0].ProductID)
	})

	t.Run("sold out removes", func(t *testing.T) {
		cart := newCart()
		clamped, err := SetQuantity(cart, 1, 2, 0)
		require.NoError(t, err)
		assert.True(t, clamped)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("unknown stock applies as given", func(t *testing.T) {
		cart := newCart()
		clamped, err := SetQuantity(cart, 0, 40, -1)
		require.NoError(t, err)
		assert.False(t, clamped)
		assert.Equal(t, 40, cart.Items[0].Quantity)
	})

	t.Run("bad index", func(t *testing.T) {
		cart := newCart()
		_, err := SetQuantity(cart, 2, 1, 5)
		assert.True(t, IsNotFound(err))
	})
}

func TestRemoveAt(t *testing.T) {
	cart := models.NewCart("u1")
	cart.Items = []models.CartItem{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 1}}

	require.NoError(t, RemoveAt(cart, 0))
	assert.Equal(t, "b", cart.Items[0].ProductID)
	assert.True(t, IsNotFound(RemoveAt(cart, 5)))
	assert.True(t, IsNotFound(RemoveAt(cart, -1)))
}

func TestRefreshItems(t *testing.T) {
	cart := models.NewCart("u1")
	cart.Items = []models.CartItem{
		{ProductID: "a", Title: "Old", Price: decimal.NewFromInt(5), Quantity: 1},
		{ProductID: "gone", Title: "Gone", Price: decimal.NewFromInt(1), Quantity: 1},
	}
	live := map[string]models.Product{
		"a": {ID: "a", Name: "New", Price: decimal.NewFromInt(7), Category: models.CategoryCar},
	}

	assert.True(t, RefreshItems(cart, live))
	assert.Equal(t, "New", cart.Items[0].Title)
	assert.True(t, decimal.NewFromInt(7).Equal(cart.Items[0].Price))
	assert.Equal(t, "Gone", cart.Items[1].Title)

	assert.False(t, RefreshItems(cart, live))
}

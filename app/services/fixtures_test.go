package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/khayal-shop/app/db/testdb"
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	products repositories.ProductRepositoryImpl
	carts    repositories.CartRepositoryImpl
	orders   repositories.OrderRepository
	users    repositories.UserRepositoryImpl
}

func newFixture(t *testing.T) *fixture {
	db := testdb.Open(t)
	return &fixture{
		db:       db,
		products: repositories.NewProductRepository(db),
		carts:    repositories.NewCartRepository(db),
		orders:   repositories.NewOrderRepository(db),
		users:    repositories.NewUserRepository(db),
	}
}

func (f *fixture) product(t *testing.T, name, category string, price int64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Category: category,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		ImageURL: models.PlaceholderImageURL,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) cartWith(t *testing.T, userID string, items ...models.CartItem) {
	t.Helper()
	cart := models.NewCart(userID)
	cart.Items = append(cart.Items, items...)
	require.NoError(t, f.carts.Save(context.Background(), cart))
}

package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/db/testdb"
	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCartRepositorySaveAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(testdb.Open(t))

	cart, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, cart)

	cart = models.NewCart("u1")
	cart.Items = append(cart.Items, models.CartItem{ProductID: "p1", Title: "Watch", Price: decimal.NewFromInt(10), Quantity: 2})
	require.NoError(t, repo.Save(ctx, cart))

	cart.Items[0].Quantity = 3
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.False(t, got.LastUpdated.IsZero())

	require.NoError(t, repo.Clear(ctx, nil, "u1"))
	got, err = repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestProductRepositoryRejectsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(testdb.Open(t))

	err := repo.Create(ctx, &models.Product{Name: "Bag", Category: "bags", Price: decimal.NewFromInt(5)})
	var schemaErr *models.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Fields, "Category")

	err = repo.Create(ctx, &models.Product{Name: "Bag", Category: models.CategoryAccessories, Price: decimal.NewFromInt(-1)})
	assert.True(t, errors.As(err, &schemaErr))

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, "missing"), gorm.ErrRecordNotFound))
}

func TestCategoryRepositoryCounts(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := NewProductRepository(db)

	for _, c := range []string{models.CategoryClothes, models.CategoryClothes, models.CategoryCar} {
		require.NoError(t, products.Create(ctx, &models.Product{Name: "x", Category: c, Price: decimal.NewFromInt(1)}))
	}

	counts, err := NewCategoryRepository(db).CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{models.CategoryClothes: 2, models.CategoryCar: 1}, counts)
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(testdb.Open(t))

	order := &models.Order{
		OrderNumber:     "KH123456789",
		UserID:          "u1",
		RequestToken:    "tok-1",
		CustomerName:    "Mona",
		CustomerEmail:   "mona@example.com",
		CustomerPhone:   "0100",
		CustomerAddress: "Cairo",
		Items:           []models.CartItem{{ProductID: "p1", Title: "Watch", Price: decimal.NewFromInt(10), Quantity: 1}},
		Total:           decimal.NewFromInt(10),
		Status:          models.OrderStatusPending,
	}
	require.NoError(t, repo.Create(ctx, nil, order))

	dup := *order
	dup.ID = ""
	assert.Error(t, repo.Create(ctx, nil, &dup), "same user and request token must be unique")

	found, err := repo.FindByRequestToken(ctx, nil, "u1", "tok-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, order.ID, found.ID)

	found, err = repo.FindByRequestToken(ctx, nil, "u2", "tok-1")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered))
	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)

	assert.True(t, errors.Is(repo.UpdateStatus(ctx, "missing", models.OrderStatusPending), gorm.ErrRecordNotFound))

	mine, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestUserRepositoryNormalisesEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testdb.Open(t))

	user := &models.User{Email: " Mona@Example.com ", DisplayName: "Mona"}
	require.NoError(t, repo.Create(ctx, user, "secret1"))
	assert.NotEqual(t, "secret1", user.PasswordHash)

	got, err := repo.FindByEmail(ctx, "MONA@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	got, err = repo.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListingsSkipMalformedRows(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	products := NewProductRepository(db)

	good := []*models.Product{
		{Name: "Watch", Category: models.CategoryAccessories, Price: decimal.NewFromInt(10), Stock: 1},
		{Name: "Shirt", Category: models.CategoryClothes, Price: decimal.NewFromInt(5), Stock: 1},
	}
	for _, p := range good {
		require.NoError(t, products.Create(ctx, p))
	}
	now := time.Now()
	require.NoError(t, db.Exec(
		"INSERT INTO products (id, name, category, price, stock, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		"bad-1", "Boots", "Shoes", "40", 2, now, now,
	).Error)

	all, err := products.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, p := range all {
		assert.NotEqual(t, "bad-1", p.ID)
	}

	byIDs, err := products.GetByIDs(ctx, []string{good[0].ID, "bad-1"})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, good[0].ID, byIDs[0].ID)

	_, err = products.GetByID(ctx, "bad-1")
	var schemaErr *models.SchemaError
	assert.True(t, errors.As(err, &schemaErr), "single reads still reject the malformed row")

	orders := NewOrderRepository(db)
	require.NoError(t, orders.Create(ctx, nil, &models.Order{
		OrderNumber:     "KH123456789",
		UserID:          "u1",
		RequestToken:    "tok-1",
		CustomerName:    "Mona",
		CustomerEmail:   "mona@example.com",
		CustomerPhone:   "0100",
		CustomerAddress: "Cairo",
		Items:           []models.CartItem{{ProductID: good[0].ID, Title: "Watch", Price: decimal.NewFromInt(10), Quantity: 1}},
		Total:           decimal.NewFromInt(10),
		Status:          models.OrderStatusPending,
	}))
	require.NoError(t, db.Exec(
		"INSERT INTO orders (id, order_number, user_id, request_token, customer_name, customer_email, customer_phone, customer_address, items, total, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		"bad-order", "KH000000001", "u1", "tok-2", "Omar", "omar@example.com", "0111", "Giza", "[]", "0", "lost", now, now,
	).Error)

	listed, err := orders.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "KH123456789", listed[0].OrderNumber)

	mine, err := orders.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

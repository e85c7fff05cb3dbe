package services

import (
	"strconv"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
)

// AddOrIncrement adds one unit of product to the cart. An existing line is
// incremented; otherwise a new line with quantity 1 is appended. It refuses
// with *StockExceededError, leaving the cart untouched, when the product is
// out of stock or the line already holds the whole stock.
func AddOrIncrement(cart *models.Cart, product *models.Product, now time.Time) error {
	if product.Stock < 1 {
		return &StockExceededError{ProductID: product.ID, Stock: product.Stock, Requested: 1}
	}

	if i := cart.IndexOf(product.ID); i >= 0 {
		item := &cart.Items[i]
		if item.Quantity >= product.Stock {
			return &StockExceededError{ProductID: product.ID, Stock: product.Stock, Requested: item.Quantity + 1}
		}
		item.Quantity++
		return nil
	}

	cart.Items = append(cart.Items, models.CartItem{
		ProductID: product.ID,
		Title:     product.Name,
		Price:     product.Price,
		Quantity:  1,
		ImageURL:  product.ImageURL,
		Category:  product.Category,
		AddedAt:   now,
	})
	return nil
}

// SetQuantity sets the quantity of the line at index. A qty below 1 removes
// the line. A qty above stock is clamped to stock and clamped is true; when
// stock itself is below 1 the line is removed. A negative stock means the
// live stock is unknown and qty is applied as given.
func SetQuantity(cart *models.Cart, index, qty, stock int) (clamped bool, err error) {
	if index < 0 || index >= len(cart.Items) {
		return false, &NotFoundError{Kind: "cart item", ID: strconv.Itoa(index)}
	}

	if qty < 1 {
		return false, RemoveAt(cart, index)
	}

	if stock >= 0 && qty > stock {
		clamped = true
		qty = stock
		if qty < 1 {
			return clamped, RemoveAt(cart, index)
		}
	}

	cart.Items[index].Quantity = qty
	return clamped, nil
}

func RemoveAt(cart *models.Cart, index int) error {
	if index < 0 || index >= len(cart.Items) {
		return &NotFoundError{Kind: "cart item", ID: strconv.Itoa(index)}
	}
	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	return nil
}

// RefreshItems copies the live name, price, image and category onto each
// line. It reports whether anything changed. Lines without a live product
// are left as they are.
func RefreshItems(cart *models.Cart, live map[string]models.Product) bool {
	changed := false
	for i := range cart.Items {
		item := &cart.Items[i]
		product, ok := live[item.ProductID]
		if !ok {
			continue
		}
		if item.Title != product.Name || !item.Price.Equal(product.Price) ||
			item.ImageURL != product.ImageURL || item.Category != product.Category {
			item.Title = product.Name
			item.Price = product.Price
			item.ImageURL = product.ImageURL
			item.Category = product.Category
			changed = true
		}
	}
	return changed
}

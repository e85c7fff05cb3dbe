package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
)

type CartService struct {
	cartRepo    repositories.CartRepositoryImpl
	productRepo repositories.ProductRepositoryImpl
	now         func() time.Time
}

func NewCartService(cartRepo repositories.CartRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// GetUserCart returns the user's cart, or an empty one when there is no
// user or no cart document.
func (s *CartService) GetUserCart(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return models.NewCart(""), nil
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("CartService.GetUserCart: failed to load cart for user %s: %v", userID, err)
		return models.NewCart(userID), storeError("load cart", "cart", userID, err)
	}
	if cart == nil {
		return models.NewCart(userID), nil
	}
	return cart, nil
}

// SaveCart overwrites the stored cart. Concurrent writers are last-write-wins.
func (s *CartService) SaveCart(ctx context.Context, cart *models.Cart) error {
	if cart.UserID == "" {
		return &AuthRequiredError{Action: "save your cart"}
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		log.Printf("CartService.SaveCart: failed to save cart for user %s: %v", cart.UserID, err)
		return storeError("save cart", "cart", cart.UserID, err)
	}
	return nil
}

func (s *CartService) AddItemToCart(ctx context.Context, userID, productID string) (*models.Cart, error) {
	if userID == "" {
		return nil, &AuthRequiredError{Action: "add items to your cart"}
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, storeError("load product", "product", productID, err)
	}

	cart, err := s.GetUserCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := AddOrIncrement(cart, product, s.now()); err != nil {
		log.Printf("CartService.AddItemToCart: refused product %s for user %s: %v", productID, userID, err)
		return cart, err
	}

	if err := s.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateCartItemQty applies SetQuantity against the product's live stock.
// When the requested quantity had to be reduced, notice describes the stock
// limit that was applied. A line whose product no longer exists is left
// unchanged; if the stock check itself fails the quantity is applied as
// given.
func (s *CartService) UpdateCartItemQty(ctx context.Context, userID string, index, qty int) (cart *models.Cart, notice *StockExceededError, err error) {
	if userID == "" {
		return nil, nil, &AuthRequiredError{Action: "update your cart"}
	}

	cart, err = s.GetUserCart(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(cart.Items) {
		return cart, nil, &NotFoundError{Kind: "cart item", ID: strconv.Itoa(index)}
	}

	productID := cart.Items[index].ProductID
	stock := -1
	if qty >= 1 {
		product, err := s.productRepo.GetByID(ctx, productID)
		switch {
		case err == nil:
			stock = product.Stock
		case IsNotFound(storeError("load product", "product", productID, err)):
			log.Printf("CartService.UpdateCartItemQty: product %s no longer exists, leaving line unchanged", productID)
			return cart, nil, nil
		default:
			log.Printf("CartService.UpdateCartItemQty: stock check failed for product %s: %v", productID, err)
		}
	}

	clamped, err := SetQuantity(cart, index, qty, stock)
	if err != nil {
		return cart, nil, err
	}
	if clamped {
		notice = &StockExceededError{ProductID: productID, Stock: stock, Requested: qty}
	}

	if err := s.SaveCart(ctx, cart); err != nil {
		return nil, nil, err
	}
	return cart, notice, nil
}

func (s *CartService) RemoveItemFromCart(ctx context.Context, userID string, index int) (*models.Cart, error) {
	if userID == "" {
		return nil, &AuthRequiredError{Action: "update your cart"}
	}

	cart, err := s.GetUserCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := RemoveAt(cart, index); err != nil {
		return cart, err
	}
	if err := s.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the cart. Clearing an empty cart is a no-op.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return &AuthRequiredError{Action: "clear your cart"}
	}
	if err := s.cartRepo.Clear(ctx, nil, userID); err != nil {
		log.Printf("CartService.ClearCart: failed to clear cart for user %s: %v", userID, err)
		return storeError("clear cart", "cart", userID, err)
	}
	return nil
}

// RefreshCart reloads line details from the live products and saves the
// cart when anything changed.
func (s *CartService) RefreshCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.IsEmpty() {
		return cart, nil
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		log.Printf("CartService.RefreshCart: failed to load products for cart %s: %v", cart.UserID, err)
		return cart, nil
	}

	live := make(map[string]models.Product, len(products))
	for _, p := range products {
		live[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := live[id]; !ok {
			log.Printf("CartService.RefreshCart: product %s in cart %s no longer exists", id, cart.UserID)
		}
	}

	if RefreshItems(cart, live) && cart.UserID != "" {
		if err := s.SaveCart(ctx, cart); err != nil {
			return cart, fmt.Errorf("failed to save refreshed cart: %w", err)
		}
	}
	return cart, nil
}

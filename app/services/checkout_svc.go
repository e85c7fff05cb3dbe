package services

import (
	"context"
	"log"
	"strings"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/Rakhulsr/khayal-shop/app/utils/calc"
	"github.com/Rakhulsr/khayal-shop/app/utils/ordernum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutForm is the customer data submitted with an order.
type CheckoutForm struct {
	CustomerName    string `json:"customerName" validate:"required"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string `json:"customerPhone" validate:"required"`
	CustomerAddress string `json:"customerAddress" validate:"required"`
	OrderNotes      string `json:"orderNotes"`
	RequestToken    string `json:"request_token"`
}

func (f *CheckoutForm) normalize() {
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.CustomerEmail = strings.TrimSpace(f.CustomerEmail)
	f.CustomerPhone = strings.TrimSpace(f.CustomerPhone)
	f.CustomerAddress = strings.TrimSpace(f.CustomerAddress)
	f.OrderNotes = strings.TrimSpace(f.OrderNotes)
	f.RequestToken = strings.TrimSpace(f.RequestToken)
}

type CheckoutService struct {
	db        *gorm.DB
	cartRepo  repositories.CartRepositoryImpl
	orderRepo repositories.OrderRepository
	numbers   *ordernum.Generator
	notifier  OrderNotifier
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	orderRepo repositories.OrderRepository,
	notifier OrderNotifier,
) *CheckoutService {
	return &CheckoutService{
		db:        db,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		numbers:   ordernum.NewGenerator(),
		notifier:  notifier,
	}
}

// GenerateOrderNumber returns a fresh KH order number.
func (s *CheckoutService) GenerateOrderNumber() string {
	return s.numbers.Next()
}

// Checkout turns the user's cart into a pending order and empties the cart
// in the same transaction. A repeated request token returns the order it
// already produced with created set to false.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, form CheckoutForm) (order *models.Order, created bool, err error) {
	if userID == "" {
		return nil, false, &AuthRequiredError{Action: "place an order"}
	}
	form.normalize()

	if form.RequestToken != "" {
		existing, err := s.orderRepo.FindByRequestToken(ctx, nil, userID, form.RequestToken)
		if err != nil {
			log.Printf("CheckoutService.Checkout: token lookup failed for user %s: %v", userID, err)
			return nil, false, storeError("look up order", "order", form.RequestToken, err)
		}
		if existing != nil {
			log.Printf("CheckoutService.Checkout: replayed request for order %s", existing.OrderNumber)
			return existing, false, nil
		}
	} else {
		form.RequestToken = uuid.NewString()
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		log.Printf("CheckoutService.Checkout: failed to load cart for user %s: %v", userID, err)
		return nil, false, storeError("load cart", "cart", userID, err)
	}
	if cart.IsEmpty() {
		return nil, false, ErrEmptyCart
	}

	if err := validateForm(form); err != nil {
		return nil, false, err
	}

	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)

	order = &models.Order{
		OrderNumber:     s.GenerateOrderNumber(),
		UserID:          userID,
		RequestToken:    form.RequestToken,
		CustomerName:    form.CustomerName,
		CustomerEmail:   form.CustomerEmail,
		CustomerPhone:   form.CustomerPhone,
		CustomerAddress: form.CustomerAddress,
		OrderNotes:      form.OrderNotes,
		Items:           items,
		Total:           calc.CartTotal(items),
		Status:          models.OrderStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}
		return s.cartRepo.Clear(ctx, tx, userID)
	})
	if err != nil {
		// A concurrent request with the same token may have won the unique index.
		existing, lookupErr := s.orderRepo.FindByRequestToken(ctx, nil, userID, form.RequestToken)
		if lookupErr == nil && existing != nil {
			return existing, false, nil
		}
		log.Printf("CheckoutService.Checkout: failed to place order for user %s: %v", userID, err)
		return nil, false, storeError("place order", "order", order.OrderNumber, err)
	}

	log.Printf("CheckoutService.Checkout: ✅ order %s placed for user %s, total %s", order.OrderNumber, userID, order.Total.StringFixed(2))
	notifyInBackground(s.notifier, *order)

	return order, true, nil
}

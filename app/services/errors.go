package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"gorm.io/gorm"
)

// ErrEmptyCart is returned by checkout when there is nothing to order.
var ErrEmptyCart = errors.New("your cart is empty")

// ErrInvalidCredentials is returned by sign-in and token parsing.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthRequiredError means the operation needs a signed-in user.
type AuthRequiredError struct {
	Action string
}

func (e *AuthRequiredError) Error() string {
	if e.Action == "" {
		return "please sign in to continue"
	}
	return fmt.Sprintf("please sign in to %s", e.Action)
}

// ForbiddenError means the user is signed in but not allowed.
type ForbiddenError struct {
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("access denied for %s", e.Action)
}

// ValidationError lists input fields that are missing or invalid.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("please fill in all required fields: %s", strings.Join(e.Fields, ", "))
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// BackendUnavailableError wraps a store or network failure. Nothing retries
// it automatically.
type BackendUnavailableError struct {
	Op  string
	Err error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// StockExceededError is returned when a quantity would go past available stock.
type StockExceededError struct {
	ProductID string
	Stock     int
	Requested int
}

func (e *StockExceededError) Error() string {
	if e.Stock < 1 {
		return "this product is out of stock"
	}
	return fmt.Sprintf("only %d items available in stock", e.Stock)
}

// storeError translates a repository error into the service taxonomy.
func storeError(op, kind, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	var schemaErr *models.SchemaError
	if errors.As(err, &schemaErr) {
		return &ValidationError{Fields: schemaErr.Fields, Message: schemaErr.Error()}
	}
	return &BackendUnavailableError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsStockExceeded(err error) bool {
	var s *StockExceededError
	return errors.As(err, &s)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"

	// OrderStatusAll is the admin filter value that matches every status.
	OrderStatusAll = "all"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusDelivered,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// StatusRank orders the statuses along the pending → confirmed → delivered
// path. Unknown statuses rank -1.
func StatusRank(status string) int {
	for i, s := range OrderStatuses {
		if s == status {
			return i
		}
	}
	return -1
}

// Order is created once at checkout. Only Status changes afterwards.
type Order struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderNumber     string          `gorm:"size:20;not null;index" json:"orderNumber" validate:"required"`
	UserID          string          `gorm:"size:36;not null;uniqueIndex:idx_orders_user_request" json:"userId" validate:"required"`
	RequestToken    string          `gorm:"size:64;not null;uniqueIndex:idx_orders_user_request" json:"-"`
	CustomerName    string          `gorm:"size:255;not null" json:"customerName" validate:"required"`
	CustomerEmail   string          `gorm:"size:255;not null" json:"customerEmail" validate:"required"`
	CustomerPhone   string          `gorm:"size:50;not null" json:"customerPhone" validate:"required"`
	CustomerAddress string          `gorm:"type:text;not null" json:"customerAddress" validate:"required"`
	OrderNotes      string          `gorm:"type:text" json:"orderNotes"`
	Items           []CartItem      `gorm:"type:text;serializer:json" json:"items" validate:"required,min=1"`
	Total           decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`
	Status          string          `gorm:"size:20;not null;default:'pending';index" json:"status" validate:"required,oneof=pending confirmed delivered"`
	CreatedAt       time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (o *Order) Validate() error {
	var extra []string
	if o.Total.IsNegative() {
		extra = append(extra, "Total")
	}
	if err := checkStruct("order", o, extra...); err != nil {
		return err
	}
	return validateItems(o.Items)
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	return o.Validate()
}

func (o *Order) AfterFind(tx *gorm.DB) error {
	return o.Validate()
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the per-user cart document. Items keep insertion order and the
// whole document is overwritten on every change.
type Cart struct {
	UserID      string     `gorm:"size:36;primaryKey" json:"userId"`
	Items       []CartItem `gorm:"type:text;serializer:json" json:"items"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// ItemCount is the total quantity across all line items.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IndexOf(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) BeforeSave(tx *gorm.DB) error {
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	if c.UserID == "" {
		return &SchemaError{Entity: "cart", Fields: []string{"UserID"}}
	}
	return validateItems(c.Items)
}

func (c *Cart) AfterFind(tx *gorm.DB) error {
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	return validateItems(c.Items)
}

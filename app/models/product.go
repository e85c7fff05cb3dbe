package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const PlaceholderImageURL = "https://via.placeholder.com/300x300?text=No+Image"

type Product struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name" validate:"required"`
	Category    string          `gorm:"size:50;not null;index" json:"category" validate:"required,oneof=accessories clothes car uncategorized"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Stock       int             `gorm:"not null" json:"stock" validate:"gte=0"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `gorm:"type:text" json:"imageUrl"`
	CreatedAt   time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

func (p *Product) Validate() error {
	var extra []string
	if p.Price.IsNegative() {
		extra = append(extra, "Price")
	}
	return checkStruct("product", p, extra...)
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	return p.Validate()
}

package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepositoryImpl interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, tx *gorm.DB, userID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &cartRepository{db}
}

// GetByUserID returns nil, nil when the user has no cart document yet.
func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Save overwrites the whole cart document.
func (r *cartRepository) Save(ctx context.Context, cart *models.Cart) error {
	return upsertCart(r.db.WithContext(ctx), cart)
}

func (r *cartRepository) Clear(ctx context.Context, tx *gorm.DB, userID string) error {
	if tx == nil {
		tx = r.db
	}
	return upsertCart(tx.WithContext(ctx), models.NewCart(userID))
}

func upsertCart(db *gorm.DB, cart *models.Cart) error {
	cart.LastUpdated = time.Now()
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(cart).Error
}

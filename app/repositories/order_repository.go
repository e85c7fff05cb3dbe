package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	FindByRequestToken(ctx context.Context, tx *gorm.DB, userID, token string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status string) error
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindByRequestToken(ctx context.Context, tx *gorm.DB, userID, token string) (*models.Order, error) {
	if tx == nil {
		tx = r.db
	}
	var order models.Order

	err := tx.WithContext(ctx).
		Where("user_id = ? AND request_token = ?", userID, token).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus bypasses model hooks and overwrites the status unconditionally.
func (r *gormOrderRepository) UpdateStatus(ctx context.Context, orderID string, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		UpdateColumns(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// listSession skips the AfterFind check so that one malformed row cannot
// fail a whole listing. Rows are checked by validOrders instead.
func (r *gormOrderRepository) listSession(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Session(&gorm.Session{SkipHooks: true})
}

// GetAllOrders returns every well-formed order, newest first. Malformed rows
// are logged and left out.
func (r *gormOrderRepository) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order

	err := r.listSession(ctx).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return validOrders(orders), nil
}

func (r *gormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order

	err := r.listSession(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}
	return validOrders(orders), nil
}

func validOrders(orders []models.Order) []models.Order {
	valid := orders[:0]
	for _, order := range orders {
		if err := order.Validate(); err != nil {
			log.Printf("OrderRepository: skipping order %s: %v", order.ID, err)
			continue
		}
		valid = append(valid, order)
	}
	return valid
}

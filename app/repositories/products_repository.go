package repositories

import (
	"context"
	"log"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

// listSession skips the AfterFind check so that one malformed row cannot
// fail a whole listing. Rows are checked by validProducts instead.
func (p *productRepository) listSession(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).Session(&gorm.Session{SkipHooks: true})
}

// GetProducts returns every well-formed product, newest first. Malformed
// rows are logged and left out.
func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.listSession(ctx).
		Model(&models.Product{}).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return validProducts(products), nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := p.listSession(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return validProducts(products), nil
}

func validProducts(products []models.Product) []models.Product {
	valid := products[:0]
	for _, product := range products {
		if err := product.Validate(); err != nil {
			log.Printf("ProductRepository: skipping product %s: %v", product.ID, err)
			continue
		}
		valid = append(valid, product)
	}
	return valid
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	result := p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

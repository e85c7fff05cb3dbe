package services

import (
	"context"
	"log"
	"strings"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/shopspring/decimal"
)

// ProductForm is the admin create/update payload.
type ProductForm struct {
	Name        string          `json:"name" validate:"required"`
	Category    string          `json:"category" validate:"oneof=accessories clothes car uncategorized"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
}

func (f *ProductForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = models.NormalizeCategory(f.Category)
	f.Description = strings.TrimSpace(f.Description)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
}

func (f ProductForm) validate() error {
	err := validateForm(f)
	if !f.Price.IsPositive() {
		fields := []string{}
		if verr, ok := err.(*ValidationError); ok {
			fields = verr.Fields
		} else if err != nil {
			return err
		}
		return &ValidationError{Fields: append(fields, "price")}
	}
	return err
}

func (f ProductForm) apply(p *models.Product) {
	p.Name = f.Name
	p.Category = f.Category
	p.Price = f.Price.Round(2)
	p.Stock = f.Stock
	p.Description = f.Description
	p.ImageURL = f.ImageURL
	if p.ImageURL == "" {
		p.ImageURL = models.PlaceholderImageURL
	}
}

type ProductAdminService struct {
	productRepo repositories.ProductRepositoryImpl
}

func NewProductAdminService(productRepo repositories.ProductRepositoryImpl) *ProductAdminService {
	return &ProductAdminService{productRepo: productRepo}
}

func (s *ProductAdminService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return []models.Product{}, storeError("load products", "product", "", err)
	}
	return products, nil
}

func (s *ProductAdminService) Create(ctx context.Context, form ProductForm) (*models.Product, error) {
	form.normalize()
	if err := form.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{}
	form.apply(product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		log.Printf("ProductAdminService.Create: failed to create product %q: %v", form.Name, err)
		return nil, storeError("create product", "product", "", err)
	}

	log.Printf("ProductAdminService.Create: ✅ product %s created", product.ID)
	return product, nil
}

// Update replaces every editable field of the product.
func (s *ProductAdminService) Update(ctx context.Context, id string, form ProductForm) (*models.Product, error) {
	form.normalize()
	if err := form.validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("load product", "product", id, err)
	}

	form.apply(product)
	if err := s.productRepo.Update(ctx, product); err != nil {
		log.Printf("ProductAdminService.Update: failed to update product %s: %v", id, err)
		return nil, storeError("update product", "product", id, err)
	}
	return product, nil
}

// Delete removes the product. Carts and orders keep their copies of it.
func (s *ProductAdminService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		log.Printf("ProductAdminService.Delete: failed to delete product %s: %v", id, err)
		return storeError("delete product", "product", id, err)
	}
	log.Printf("ProductAdminService.Delete: ✅ product %s deleted", id)
	return nil
}

package services

import (
	"context"
	"log"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
)

// CategorySummary is one entry of the category listing.
type CategorySummary struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
	Count       int64  `json:"count"`
}

type CatalogService struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
}

func NewCatalogService(productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl) *CatalogService {
	return &CatalogService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListAll returns every product, newest first.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		log.Printf("CatalogService.ListAll: failed to fetch products: %v", err)
		return []models.Product{}, storeError("load products", "product", "", err)
	}
	return products, nil
}

// ListByCategory filters ListAll. The empty string and CategoryAll match
// every product.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products, err := s.ListAll(ctx)
	if err != nil {
		return products, err
	}
	if category == "" || category == models.CategoryAll {
		return products, nil
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("load product", "product", id, err)
	}
	return product, nil
}

// Categories lists every known category with its product count, including
// empty ones.
func (s *CatalogService) Categories(ctx context.Context) ([]CategorySummary, error) {
	counts, err := s.categoryRepo.CountByCategory(ctx)
	if err != nil {
		return nil, storeError("count categories", "category", "", err)
	}

	summaries := make([]CategorySummary, 0, len(models.Categories))
	for _, slug := range models.Categories {
		summaries = append(summaries, CategorySummary{
			Slug:        slug,
			DisplayName: models.CategoryDisplayName(slug),
			Count:       counts[slug],
		})
	}
	return summaries, nil
}

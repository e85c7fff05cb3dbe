package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"github.com/Rakhulsr/khayal-shop/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SampleProducts is the starter catalog for an empty store.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Leather Watch",
			Price:       decimal.RequireFromString("129.99"),
			Category:    models.CategoryAccessories,
			Stock:       15,
			ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=300&fit=crop",
			Description: "Premium leather wristwatch",
		},
		{
			Name:        "Sunglasses",
			Price:       decimal.RequireFromString("79.99"),
			Category:    models.CategoryAccessories,
			Stock:       20,
			ImageURL:    "https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=300&h=300&fit=crop",
			Description: "Classic UV protection sunglasses",
		},
		{
			Name:        "Cotton T-Shirt",
			Price:       decimal.RequireFromString("29.99"),
			Category:    models.CategoryClothes,
			Stock:       25,
			ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300&h=300&fit=crop",
			Description: "Comfortable 100% cotton t-shirt",
		},
		{
			Name:        "Jeans",
			Price:       decimal.RequireFromString("59.99"),
			Category:    models.CategoryClothes,
			Stock:       18,
			ImageURL:    "https://images.unsplash.com/photo-1542272604-787c3835535d?w=300&h=300&fit=crop",
			Description: "Classic blue denim jeans",
		},
		{
			Name:        "Car Phone Mount",
			Price:       decimal.RequireFromString("24.99"),
			Category:    models.CategoryCar,
			Stock:       30,
			ImageURL:    "https://images.unsplash.com/photo-1603712610496-5362a2f6ac14?w=300&h=300&fit=crop",
			Description: "Universal smartphone car holder",
		},
		{
			Name:        "Car Charger",
			Price:       decimal.RequireFromString("19.99"),
			Category:    models.CategoryCar,
			Stock:       22,
			ImageURL:    "https://images.unsplash.com/photo-1609588040091-5c99e0a115c4?w=300&h=300&fit=crop",
			Description: "Fast charging car adapter",
		},
	}
}

// DBSeed inserts SampleProducts when the catalog is empty and returns how
// many were created.
func DBSeed(ctx context.Context, db *gorm.DB) (int, error) {
	productRepo := repositories.NewProductRepository(db)

	count, err := productRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Printf("DBSeed: catalog already has %d products, skipping", count)
		return 0, nil
	}

	created := 0
	for _, product := range SampleProducts() {
		p := product
		if err := productRepo.Create(ctx, &p); err != nil {
			log.Printf("DBSeed: ❌ failed to create %s: %v", p.Name, err)
			continue
		}
		created++
		log.Printf("DBSeed: ✅ created %s", p.Name)
	}
	return created, nil
}

package repositories

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/khayal-shop/app/models"
	"gorm.io/gorm"
)

type CategoryRepositoryImpl interface {
	CountByCategory(ctx context.Context) (map[string]int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: db}
}

type categoryCount struct {
	Category string
	Total    int64
}

func (r *categoryRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []categoryCount

	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		log.Printf("CountByCategory: Failed to count products per category: %v", err)
		return nil, fmt.Errorf("failed to count products per category: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}

package migrations

import (
	"github.com/Rakhulsr/khayal-shop/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.Order{})
}

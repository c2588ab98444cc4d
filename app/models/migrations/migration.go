package migrations

import (
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{})
}

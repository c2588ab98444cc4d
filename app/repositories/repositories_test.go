package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name string, active bool) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Description: "categoría de prueba", Active: active}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, code string, categoryID uint, createdAt time.Time) *models.Product {
	t.Helper()

	product := &models.Product{
		Code:       code,
		Name:       "Producto " + code,
		Price:      decimal.NewFromFloat(99.99),
		Stock:      5,
		CategoryID: categoryID,
		Active:     true,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func testContext() context.Context {
	return context.Background()
}

package seeders

import (
	"log"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/db/fakers"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const fakeProductsPerCategory = 3

func baseCategories() []models.Category {
	return []models.Category{
		{Name: "Electrónica", Description: "Dispositivos electrónicos y gadgets.", Active: true},
		{Name: "Ropa", Description: "Prendas de vestir para todas las edades.", Active: true},
		{Name: "Hogar", Description: "Artículos para el hogar y decoración.", Active: true},
		{Name: "Juguetes", Description: "Juguetes para niños de todas las edades.", Active: true},
		{Name: "Deportes", Description: "Equipamiento y ropa deportiva.", Active: true},
	}
}

func baseProducts(electronica, hogar uint) []models.Product {
	return []models.Product{
		{Code: "P001", Name: "Laptop HP", Description: "Laptop HP Pavilion 15", Price: decimal.NewFromFloat(1200.00), Stock: 10, CategoryID: electronica, Active: true},
		{Code: "P002", Name: "Smartphone Samsung", Description: "Samsung Galaxy S21", Price: decimal.NewFromFloat(800.00), Stock: 20, CategoryID: electronica, Active: true},
		{Code: "P003", Name: "Tablet Apple", Description: "iPad Pro 11\"", Price: decimal.NewFromFloat(999.00), Stock: 15, CategoryID: electronica, Active: true},
		{Code: "P004", Name: "Monitor LG", Description: "LG UltraFine 27\"", Price: decimal.NewFromFloat(500.00), Stock: 8, CategoryID: hogar, Active: true},
		{Code: "P005", Name: "Teclado Logitech", Description: "Logitech MX Keys", Price: decimal.NewFromFloat(100.00), Stock: 25, CategoryID: hogar, Active: true},
	}
}

// DBSeed inserts the base categories, the fixed sample products and a few
// faker-generated products per category. Re-running it is safe, existing
// rows are matched by name/code and left alone.
func DBSeed(db *gorm.DB) error {
	categories := baseCategories()
	for i := range categories {
		if err := db.FirstOrCreate(&categories[i], models.Category{Name: categories[i].Name}).Error; err != nil {
			return err
		}
	}

	for _, product := range baseProducts(categories[0].ID, categories[2].ID) {
		if err := db.FirstOrCreate(&product, models.Product{Code: product.Code}).Error; err != nil {
			return err
		}
	}

	for _, category := range categories {
		for i := 0; i < fakeProductsPerCategory; i++ {
			product := fakers.ProductFaker(category.ID)
			if err := db.FirstOrCreate(product, models.Product{Code: product.Code}).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d categories with sample products", len(categories))
	return nil
}

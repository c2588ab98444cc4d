package fakers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

const codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ProductFaker builds a random product for the given category, in the shape
// of the sample catalog: PROD-X###X codes, prices between 10 and 1000 with
// two decimals, stock 0-100 and roughly 80% of the products active.
func ProductFaker(categoryID uint) *models.Product {
	price := decimal.NewFromFloat(10 + rand.Float64()*990).Round(2)

	return &models.Product{
		Code:        fakeCode(),
		Name:        fmt.Sprintf("%s %s", faker.Word(), faker.Word()),
		Description: faker.Sentence(),
		Price:       price,
		Stock:       rand.Intn(101),
		CategoryID:  categoryID,
		Active:      rand.Intn(10) < 8,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func fakeCode() string {
	return fmt.Sprintf("PROD-%c%03d%c",
		codeLetters[rand.Intn(len(codeLetters))],
		rand.Intn(1000),
		codeLetters[rand.Intn(len(codeLetters))],
	)
}

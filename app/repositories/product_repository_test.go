package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Electrónica", true)

	product := &models.Product{
		Code:       "P001",
		Name:       "Laptop HP",
		Price:      decimal.NewFromFloat(1200.00),
		Stock:      10,
		CategoryID: category.ID,
		Active:     true,
	}
	require.NoError(t, repo.Create(testContext(), product))
	require.NotZero(t, product.ID)

	found, err := repo.GetByID(testContext(), product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "P001", found.Code)
	assert.True(t, found.Price.Equal(decimal.NewFromFloat(1200.00)))

	// category comes eager-loaded with the product
	assert.Equal(t, "Electrónica", found.Category.Name)
}

func TestProductGetByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	found, err := repo.GetByID(testContext(), 999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProductGetPaginatedElevenRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Electrónica", true)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 11; i++ {
		createTestProduct(t, db, fmt.Sprintf("P%03d", i+1), category.ID, base.Add(time.Duration(i)*time.Minute))
	}

	pageOne, total, err := repo.GetPaginated(testContext(), 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 11, total)
	require.Len(t, pageOne, 10)

	// newest first
	assert.Equal(t, "P011", pageOne[0].Code)
	assert.Equal(t, "P002", pageOne[9].Code)
	assert.Equal(t, "Electrónica", pageOne[0].Category.Name)

	pageTwo, total, err := repo.GetPaginated(testContext(), 10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 11, total)
	require.Len(t, pageTwo, 1)
	assert.Equal(t, "P001", pageTwo[0].Code)
}

func TestProductActiveInactiveFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Electrónica", true)

	active := createTestProduct(t, db, "P001", category.ID, time.Now())
	inactive := createTestProduct(t, db, "P002", category.ID, time.Now())
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	actives, err := repo.GetActive(testContext())
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, active.Code, actives[0].Code)

	inactives, err := repo.GetInactive(testContext())
	require.NoError(t, err)
	require.Len(t, inactives, 1)
	assert.Equal(t, inactive.Code, inactives[0].Code)
}

func TestProductGetByCategoryPaginated(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	electronics := createTestCategory(t, db, "Electrónica", true)
	clothing := createTestCategory(t, db, "Ropa", true)

	createTestProduct(t, db, "P001", electronics.ID, time.Now())
	createTestProduct(t, db, "P002", clothing.ID, time.Now())

	products, total, err := repo.GetByCategoryPaginated(testContext(), electronics.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "P001", products[0].Code)
}

func TestProductSearchPaginated(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Electrónica", true)

	laptop := createTestProduct(t, db, "P001", category.ID, time.Now())
	laptop.Name = "Laptop HP"
	require.NoError(t, db.Save(laptop).Error)
	createTestProduct(t, db, "X900", category.ID, time.Now())

	byName, total, err := repo.SearchPaginated(testContext(), "laptop", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byName, 1)
	assert.Equal(t, "P001", byName[0].Code)

	byCode, total, err := repo.SearchPaginated(testContext(), "x9", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byCode, 1)
	assert.Equal(t, "X900", byCode[0].Code)
}

func TestProductDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Electrónica", true)
	product := createTestProduct(t, db, "P001", category.ID, time.Now())

	require.NoError(t, repo.Delete(testContext(), product.ID))

	found, err := repo.GetByID(testContext(), product.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.ErrorIs(t, repo.Delete(testContext(), product.ID), models.ErrNotFound)
}

func TestProductExistsByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	category := createTestCategory(t, db, "Electrónica", true)
	product := createTestProduct(t, db, "P001", category.ID, time.Now())

	exists, err := repo.ExistsByCode(testContext(), "P001", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(testContext(), "P001", product.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByCode(testContext(), "P999", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

package repositories

import (
	"testing"
	"time"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := &models.Category{Name: "Herramientas", Description: "Martillos", Active: true}
	require.NoError(t, repo.Create(testContext(), category))
	require.NotZero(t, category.ID)

	found, err := repo.GetByID(testContext(), category.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Herramientas", found.Name)
	assert.Equal(t, "Martillos", found.Description)
	assert.True(t, found.Active)
}

func TestCategoryGetByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	found, err := repo.GetByID(testContext(), 999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCategoryGetPaginatedOrderAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	older := &models.Category{Name: "Antigua", Active: true, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(older).Error)
	newer := &models.Category{Name: "Reciente", Active: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(newer).Error)

	createTestProduct(t, db, "P001", older.ID, time.Now())
	createTestProduct(t, db, "P002", older.ID, time.Now())

	categories, total, err := repo.GetPaginated(testContext(), 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, categories, 2)

	assert.Equal(t, "Reciente", categories[0].Name)
	assert.Equal(t, "Antigua", categories[1].Name)
	assert.EqualValues(t, 0, categories[0].ProductCount)
	assert.EqualValues(t, 2, categories[1].ProductCount)
}

func TestCategoryGetActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	createTestCategory(t, db, "Visible", true)
	createTestCategory(t, db, "Oculta", false)

	active, err := repo.GetActive(testContext())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Visible", active[0].Name)
}

func TestCategoryDeleteWithoutProducts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := createTestCategory(t, db, "Vacía", true)
	require.NoError(t, repo.Delete(testContext(), category.ID))

	found, err := repo.GetByID(testContext(), category.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCategoryDeleteGuarded(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := createTestCategory(t, db, "Ocupada", true)
	product := createTestProduct(t, db, "P001", category.ID, time.Now())

	err := repo.Delete(testContext(), category.ID)
	assert.ErrorIs(t, err, models.ErrCategoryHasProducts)

	// the category must survive a refused delete untouched
	found, err := repo.GetByID(testContext(), category.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ocupada", found.Name)

	// removing the product unblocks the delete
	require.NoError(t, db.Delete(&models.Product{}, product.ID).Error)
	require.NoError(t, repo.Delete(testContext(), category.ID))
}

func TestCategoryDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	assert.ErrorIs(t, repo.Delete(testContext(), 999), models.ErrNotFound)
}

func TestCategoryCountProducts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := createTestCategory(t, db, "Contada", true)
	createTestProduct(t, db, "P001", category.ID, time.Now())
	createTestProduct(t, db, "P002", category.ID, time.Now())

	count, err := repo.CountProducts(testContext(), category.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCategoryExistsByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := createTestCategory(t, db, "Electrónica", true)

	exists, err := repo.ExistsByName(testContext(), "Electrónica", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// update path: the row itself does not count
	exists, err = repo.ExistsByName(testContext(), "Electrónica", category.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByName(testContext(), "Ropa", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := createTestCategory(t, db, "Original", true)
	category.Name = "Renombrada"
	category.Active = false
	require.NoError(t, repo.Update(testContext(), category))

	found, err := repo.GetByID(testContext(), category.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Renombrada", found.Name)
	assert.False(t, found.Active)
}

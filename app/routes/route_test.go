package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models/migrations"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/utils/sessions"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The renderer resolves the templates directory relative to the working
// directory, so run the package tests from the repo root.
func TestMain(m *testing.M) {
	if err := os.Chdir("../.."); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	flash := sessions.NewFlashStore([]byte("0123456789abcdef0123456789abcdef"))
	return NewRouter(db, flash), db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Active: true}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, code string, categoryID uint) *models.Product {
	t.Helper()

	product := &models.Product{
		Code:       code,
		Name:       "Producto " + code,
		Price:      decimal.NewFromFloat(50),
		Stock:      3,
		CategoryID: categoryID,
		Active:     true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func postForm(router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRouterTunnelsDeleteThroughPost(t *testing.T) {
	router, db := setupRouter(t)
	category := seedCategory(t, db, "Temporales")

	form := url.Values{"_method": {"DELETE"}}
	recorder := postForm(router, "/categorias/1", form)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/categorias", recorder.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRouterTunnelsPutThroughPost(t *testing.T) {
	router, db := setupRouter(t)
	category := seedCategory(t, db, "Herramientas")
	product := seedProduct(t, db, "P001", category.ID)

	form := url.Values{
		"_method":     {"PUT"},
		"code":        {"P001"},
		"name":        {"Martillo grande"},
		"price":       {"79.90"},
		"stock":       {"8"},
		"category_id": {"1"},
		"active":      {"1"},
	}
	recorder := postForm(router, "/productos/1", form)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/productos", recorder.Header().Get("Location"))

	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.Equal(t, "Martillo grande", updated.Name)
	assert.Equal(t, "79.90", updated.Price.StringFixed(2))
	assert.Equal(t, 8, updated.Stock)
}

func TestRouterTunneledDeleteKeepsGuardedCategory(t *testing.T) {
	router, db := setupRouter(t)
	category := seedCategory(t, db, "Herramientas")
	seedProduct(t, db, "P001", category.ID)

	form := url.Values{"_method": {"DELETE"}}
	recorder := postForm(router, "/categorias/1", form)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/categorias", recorder.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRouterServesCategoryListing(t *testing.T) {
	router, db := setupRouter(t)
	seedCategory(t, db, "Electrónica")

	req := httptest.NewRequest(http.MethodGet, "/categorias", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Electrónica")
}

func TestRouterServesStockAPI(t *testing.T) {
	router, db := setupRouter(t)
	category := seedCategory(t, db, "Herramientas")
	seedProduct(t, db, "P001", category.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/productos/1/stock", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, recorder.Body.String(), `"disponible":true`)
}

package routes

import (
	"net/http"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/handlers"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/middlewares"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/repositories"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/services"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/utils/renderer"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/utils/sessions"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/validators"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, flash *sessions.FlashStore) http.Handler {
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	validator := validators.NewValidator(categoryRepo, productRepo)
	inventorySvc := services.NewInventoryService(categoryRepo, productRepo, validator)

	render := renderer.New()
	categoryHandler := handlers.NewCategoryHandler(render, flash, inventorySvc)
	productHandler := handlers.NewProductHandler(render, flash, inventorySvc)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLoggerMiddleware)

	router.HandleFunc("/", handlers.Home).Methods("GET")

	router.HandleFunc("/categorias", categoryHandler.GetCategoriesPage).Methods("GET")
	router.HandleFunc("/categorias", categoryHandler.AddCategoryPost).Methods("POST")
	router.HandleFunc("/categorias/nueva", categoryHandler.AddCategoryPage).Methods("GET")
	router.HandleFunc("/categorias/{id:[0-9]+}", categoryHandler.ShowCategoryPage).Methods("GET")
	router.HandleFunc("/categorias/{id:[0-9]+}/edit", categoryHandler.EditCategoryPage).Methods("GET")
	router.HandleFunc("/categorias/{id:[0-9]+}", categoryHandler.UpdateCategoryPut).Methods("PUT")
	router.HandleFunc("/categorias/{id:[0-9]+}", categoryHandler.DeleteCategoryPost).Methods("DELETE")
	router.HandleFunc("/categorias/{id:[0-9]+}/productos", categoryHandler.CategoryProductsPage).Methods("GET")

	router.HandleFunc("/productos", productHandler.GetProductsPage).Methods("GET")
	router.HandleFunc("/productos", productHandler.AddProductPost).Methods("POST")
	router.HandleFunc("/productos/nuevo", productHandler.AddProductPage).Methods("GET")
	router.HandleFunc("/productos/buscar", productHandler.SearchProductsPage).Methods("GET")
	router.HandleFunc("/productos/{id:[0-9]+}", productHandler.ShowProductPage).Methods("GET")
	router.HandleFunc("/productos/{id:[0-9]+}/edit", productHandler.EditProductPage).Methods("GET")
	router.HandleFunc("/productos/{id:[0-9]+}", productHandler.UpdateProductPut).Methods("PUT")
	router.HandleFunc("/productos/{id:[0-9]+}", productHandler.DeleteProductPost).Methods("DELETE")

	router.HandleFunc("/api/productos/{id:[0-9]+}/stock", productHandler.CheckStockAPI).Methods("GET")

	// The method override must run before mux matches the route: mux applies
	// Use middlewares only after a successful match, so a form POST carrying
	// _method=PUT|DELETE would be refused with 405 before the override ran.
	return middlewares.MethodOverrideMiddleware(router)
}

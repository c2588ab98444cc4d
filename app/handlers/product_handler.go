package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/helpers"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/utils/breadcrumb"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/utils/pagination"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/utils/sessions"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/validators"
	"github.com/gorilla/csrf"
	"github.com/unrolled/render"
)

type ProductService interface {
	ListProducts(ctx context.Context, page int) ([]models.Product, pagination.Pagination, error)
	SearchProducts(ctx context.Context, keyword string, page int) ([]models.Product, pagination.Pagination, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, form validators.ProductForm) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint, form validators.ProductForm) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	ActiveCategories(ctx context.Context) ([]models.Category, error)
}

type ProductPageData struct {
	BasePageData
	Products    []models.Product
	Product     *models.Product
	ProductData *validators.ProductForm
	Categories  []models.Category
	IsEdit      bool
	FormAction  string
	Errors      map[string]string
	Pagination  pagination.Pagination
	Query       string
}

type ProductHandler struct {
	render  *render.Render
	flash   *sessions.FlashStore
	service ProductService
}

func NewProductHandler(render *render.Render, flash *sessions.FlashStore, service ProductService) *ProductHandler {
	return &ProductHandler{render: render, flash: flash, service: service}
}

func (h *ProductHandler) populateBase(w http.ResponseWriter, r *http.Request, data *BasePageData) {
	status, message := h.flash.Pop(w, r)
	data.MessageStatus = status
	data.Message = message
	data.CSRFField = csrf.TemplateField(r)
}

func (h *ProductHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	data := &ProductPageData{}
	h.populateBase(w, r, &data.BasePageData)
	data.Title = "No encontrado"
	h.render.HTML(w, http.StatusNotFound, "404", data)
}

// populateCategories fills the category select of the product form with the
// active categories only.
func (h *ProductHandler) populateCategories(r *http.Request, data *ProductPageData) {
	categories, err := h.service.ActiveCategories(r.Context())
	if err != nil {
		log.Printf("ProductHandler: error al cargar las categorías activas: %v", err)
		return
	}
	data.Categories = categories
}

func (h *ProductHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	data := &ProductPageData{}
	h.populateBase(w, r, &data.BasePageData)

	data.Title = "Productos"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Productos", URL: "/productos"},
	}

	page := helpers.GetPageParam(r)
	products, pager, err := h.service.ListProducts(r.Context(), page)
	if err != nil {
		log.Printf("GetProductsPage: error al listar productos: %v", err)
		data.Message = "No se pudieron cargar los productos."
		data.MessageStatus = "error"
	} else {
		data.Products = products
		data.Pagination = pager
	}

	h.render.HTML(w, http.StatusOK, "productos/index", data)
}

func (h *ProductHandler) SearchProductsPage(w http.ResponseWriter, r *http.Request) {
	data := &ProductPageData{Query: r.URL.Query().Get("q")}
	h.populateBase(w, r, &data.BasePageData)

	data.Title = "Búsqueda de Productos"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Productos", URL: "/productos"},
		{Name: "Búsqueda", URL: "/productos/buscar"},
	}

	page := helpers.GetPageParam(r)
	products, pager, err := h.service.SearchProducts(r.Context(), data.Query, page)
	if err != nil {
		log.Printf("SearchProductsPage: error al buscar productos: %v", err)
		data.Message = "No se pudo realizar la búsqueda."
		data.MessageStatus = "error"
	} else {
		data.Products = products
		data.Pagination = pager
	}

	h.render.HTML(w, http.StatusOK, "productos/index", data)
}

func (h *ProductHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	data := &ProductPageData{
		FormAction:  "/productos",
		IsEdit:      false,
		ProductData: &validators.ProductForm{Active: true},
		Errors:      make(map[string]string),
	}
	h.populateBase(w, r, &data.BasePageData)
	h.populateCategories(r, data)

	data.Title = "Nuevo Producto"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Productos", URL: "/productos"},
		{Name: "Nuevo", URL: "/productos/nuevo"},
	}

	h.render.HTML(w, http.StatusOK, "productos/form", data)
}

func (h *ProductHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("AddProductPost: error al parsear el formulario: %v", err)
		h.flash.Set(w, r, "error", "No se pudo procesar el formulario.")
		http.Redirect(w, r, "/productos/nuevo", http.StatusSeeOther)
		return
	}

	form := productFormFromRequest(r)

	if _, err := h.service.CreateProduct(r.Context(), form); err != nil {
		if vErr, ok := models.AsValidationError(err); ok {
			data := &ProductPageData{
				FormAction:  "/productos",
				IsEdit:      false,
				ProductData: &form,
				Errors:      vErr.Fields,
			}
			h.populateBase(w, r, &data.BasePageData)
			h.populateCategories(r, data)
			data.Title = "Nuevo Producto"
			h.render.HTML(w, http.StatusOK, "productos/form", data)
			return
		}
		log.Printf("AddProductPost: error al crear el producto: %v", err)
		h.flash.Set(w, r, "error", "No se pudo crear el producto.")
		http.Redirect(w, r, "/productos/nuevo", http.StatusSeeOther)
		return
	}

	h.flash.Set(w, r, "success", "Producto creado exitosamente.")
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

func (h *ProductHandler) ShowProductPage(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		log.Printf("ShowProductPage: error al buscar el producto %d: %v", id, err)
		h.flash.Set(w, r, "error", "No se pudo cargar el producto.")
		http.Redirect(w, r, "/productos", http.StatusSeeOther)
		return
	}

	data := &ProductPageData{Product: product}
	h.populateBase(w, r, &data.BasePageData)
	data.Title = product.Name
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Productos", URL: "/productos"},
		{Name: product.Name, URL: fmt.Sprintf("/productos/%d", product.ID)},
	}

	h.render.HTML(w, http.StatusOK, "productos/show", data)
}

func (h *ProductHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		log.Printf("EditProductPage: error al buscar el producto %d: %v", id, err)
		h.flash.Set(w, r, "error", "No se pudo cargar el producto.")
		http.Redirect(w, r, "/productos", http.StatusSeeOther)
		return
	}

	data := &ProductPageData{
		FormAction: fmt.Sprintf("/productos/%d", id),
		IsEdit:     true,
		Product:    product,
		ProductData: &validators.ProductForm{
			Code:        product.Code,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price.StringFixed(2),
			Stock:       fmt.Sprintf("%d", product.Stock),
			CategoryID:  fmt.Sprintf("%d", product.CategoryID),
			Active:      product.Active,
		},
		Errors: make(map[string]string),
	}
	h.populateBase(w, r, &data.BasePageData)
	h.populateCategories(r, data)
	data.Title = "Editar Producto"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Productos", URL: "/productos"},
		{Name: "Editar", URL: fmt.Sprintf("/productos/%d/edit", id)},
	}

	h.render.HTML(w, http.StatusOK, "productos/form", data)
}

func (h *ProductHandler) UpdateProductPut(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("UpdateProductPut: error al parsear el formulario: %v", err)
		h.flash.Set(w, r, "error", "No se pudo procesar el formulario.")
		http.Redirect(w, r, fmt.Sprintf("/productos/%d/edit", id), http.StatusSeeOther)
		return
	}

	form := productFormFromRequest(r)

	if _, err := h.service.UpdateProduct(r.Context(), id, form); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		if vErr, ok := models.AsValidationError(err); ok {
			data := &ProductPageData{
				FormAction:  fmt.Sprintf("/productos/%d", id),
				IsEdit:      true,
				ProductData: &form,
				Errors:      vErr.Fields,
			}
			h.populateBase(w, r, &data.BasePageData)
			h.populateCategories(r, data)
			data.Title = "Editar Producto"
			h.render.HTML(w, http.StatusOK, "productos/form", data)
			return
		}
		log.Printf("UpdateProductPut: error al actualizar el producto %d: %v", id, err)
		h.flash.Set(w, r, "error", "No se pudo actualizar el producto.")
		http.Redirect(w, r, fmt.Sprintf("/productos/%d/edit", id), http.StatusSeeOther)
		return
	}

	h.flash.Set(w, r, "success", "Producto actualizado exitosamente.")
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

func (h *ProductHandler) DeleteProductPost(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		log.Printf("DeleteProductPost: error al eliminar el producto %d: %v", id, err)
		h.flash.Set(w, r, "error", "No se pudo eliminar el producto.")
		http.Redirect(w, r, "/productos", http.StatusSeeOther)
		return
	}

	h.flash.Set(w, r, "success", "Producto eliminado exitosamente.")
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

// CheckStockAPI answers the stock lookup used by the views to check
// availability without a page reload.
func (h *ProductHandler) CheckStockAPI(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "producto no encontrado"})
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "producto no encontrado"})
			return
		}
		log.Printf("CheckStockAPI: error al buscar el producto %d: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "error interno"})
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"id":         product.ID,
		"code":       product.Code,
		"stock":      product.Stock,
		"active":     product.Active,
		"disponible": product.Active && product.Stock > 0,
	})
}

func productFormFromRequest(r *http.Request) validators.ProductForm {
	return validators.ProductForm{
		Code:        r.PostFormValue("code"),
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		Stock:       r.PostFormValue("stock"),
		CategoryID:  r.PostFormValue("category_id"),
		Active:      parseActive(r),
	}
}

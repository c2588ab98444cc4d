package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
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

type CategoryService interface {
	ListCategories(ctx context.Context, page int) ([]models.Category, pagination.Pagination, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, form validators.CategoryForm) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, form validators.CategoryForm) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	ProductsByCategory(ctx context.Context, categoryID uint, page int) (*models.Category, []models.Product, pagination.Pagination, error)
}

type BasePageData struct {
	Title         string
	Message       string
	MessageStatus string
	Breadcrumbs   []breadcrumb.Breadcrumb
	CSRFField     template.HTML
}

type CategoryPageData struct {
	BasePageData
	Categories   []models.Category
	Category     *models.Category
	Products     []models.Product
	CategoryData *validators.CategoryForm
	IsEdit       bool
	FormAction   string
	Errors       map[string]string
	Pagination   pagination.Pagination
}

type CategoryHandler struct {
	render  *render.Render
	flash   *sessions.FlashStore
	service CategoryService
}

func NewCategoryHandler(render *render.Render, flash *sessions.FlashStore, service CategoryService) *CategoryHandler {
	return &CategoryHandler{render: render, flash: flash, service: service}
}

func (h *CategoryHandler) populateBase(w http.ResponseWriter, r *http.Request, data *BasePageData) {
	status, message := h.flash.Pop(w, r)
	data.MessageStatus = status
	data.Message = message
	data.CSRFField = csrf.TemplateField(r)
}

func (h *CategoryHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	data := &CategoryPageData{}
	h.populateBase(w, r, &data.BasePageData)
	data.Title = "No encontrado"
	h.render.HTML(w, http.StatusNotFound, "404", data)
}

func (h *CategoryHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	data := &CategoryPageData{}
	h.populateBase(w, r, &data.BasePageData)

	data.Title = "Categorías"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Categorías", URL: "/categorias"},
	}

	page := helpers.GetPageParam(r)
	categories, pager, err := h.service.ListCategories(r.Context(), page)
	if err != nil {
		log.Printf("GetCategoriesPage: error al listar categorías: %v", err)
		data.Message = "No se pudieron cargar las categorías."
		data.MessageStatus = "error"
	} else {
		data.Categories = categories
		data.Pagination = pager
	}

	h.render.HTML(w, http.StatusOK, "categorias/index", data)
}

func (h *CategoryHandler) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	data := &CategoryPageData{
		FormAction:   "/categorias",
		IsEdit:       false,
		CategoryData: &validators.CategoryForm{Active: true},
		Errors:       make(map[string]string),
	}
	h.populateBase(w, r, &data.BasePageData)

	data.Title = "Nueva Categoría"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Categorías", URL: "/categorias"},
		{Name: "Nueva", URL: "/categorias/nueva"},
	}

	h.render.HTML(w, http.StatusOK, "categorias/form", data)
}

func (h *CategoryHandler) AddCategoryPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("AddCategoryPost: error al parsear el formulario: %v", err)
		h.flash.Set(w, r, "error", "No se pudo procesar el formulario.")
		http.Redirect(w, r, "/categorias/nueva", http.StatusSeeOther)
		return
	}

	form := validators.CategoryForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Active:      parseActive(r),
	}

	if _, err := h.service.CreateCategory(r.Context(), form); err != nil {
		if vErr, ok := models.AsValidationError(err); ok {
			data := &CategoryPageData{
				FormAction:   "/categorias",
				IsEdit:       false,
				CategoryData: &form,
				Errors:       vErr.Fields,
			}
			h.populateBase(w, r, &data.BasePageData)
			data.Title = "Nueva Categoría"
			h.render.HTML(w, http.StatusOK, "categorias/form", data)
			return
		}
		log.Printf("AddCategoryPost: error al crear la categoría: %v", err)
		h.flash.Set(w, r, "error", "No se pudo crear la categoría.")
		http.Redirect(w, r, "/categorias/nueva", http.StatusSeeOther)
		return
	}

	h.flash.Set(w, r, "success", "Categoría creada exitosamente.")
	http.Redirect(w, r, "/categorias", http.StatusSeeOther)
}

func (h *CategoryHandler) ShowCategoryPage(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		log.Printf("ShowCategoryPage: error al buscar la categoría %d: %v", id, err)
		h.flash.Set(w, r, "error", "No se pudo cargar la categoría.")
		http.Redirect(w, r, "/categorias", http.StatusSeeOther)
		return
	}

	data := &CategoryPageData{Category: category}
	h.populateBase(w, r, &data.BasePageData)
	data.Title = category.Name
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Categorías", URL: "/categorias"},
		{Name: category.Name, URL: fmt.Sprintf("/categorias/%d", category.ID)},
	}

	h.render.HTML(w, http.StatusOK, "categorias/show", data)
}

func (h *CategoryHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		log.Printf("EditCategoryPage: error al buscar la categoría %d: %v", id, err)
		h.flash.Set(w, r, "error", "No se pudo cargar la categoría.")
		http.Redirect(w, r, "/categorias", http.StatusSeeOther)
		return
	}

	data := &CategoryPageData{
		FormAction: fmt.Sprintf("/categorias/%d", id),
		IsEdit:     true,
		Category:   category,
		CategoryData: &validators.CategoryForm{
			Name:        category.Name,
			Description: category.Description,
			Active:      category.Active,
		},
		Errors: make(map[string]string),
	}
	h.populateBase(w, r, &data.BasePageData)
	data.Title = "Editar Categoría"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Categorías", URL: "/categorias"},
		{Name: "Editar", URL: fmt.Sprintf("/categorias/%d/edit", id)},
	}

	h.render.HTML(w, http.StatusOK, "categorias/form", data)
}

func (h *CategoryHandler) UpdateCategoryPut(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("UpdateCategoryPut: error al parsear el formulario: %v", err)
		h.flash.Set(w, r, "error", "No se pudo procesar el formulario.")
		http.Redirect(w, r, fmt.Sprintf("/categorias/%d/edit", id), http.StatusSeeOther)
		return
	}

	form := validators.CategoryForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Active:      parseActive(r),
	}

	if _, err := h.service.UpdateCategory(r.Context(), id, form); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		if vErr, ok := models.AsValidationError(err); ok {
			data := &CategoryPageData{
				FormAction:   fmt.Sprintf("/categorias/%d", id),
				IsEdit:       true,
				CategoryData: &form,
				Errors:       vErr.Fields,
			}
			h.populateBase(w, r, &data.BasePageData)
			data.Title = "Editar Categoría"
			h.render.HTML(w, http.StatusOK, "categorias/form", data)
			return
		}
		log.Printf("UpdateCategoryPut: error al actualizar la categoría %d: %v", id, err)
		h.flash.Set(w, r, "error", "No se pudo actualizar la categoría.")
		http.Redirect(w, r, fmt.Sprintf("/categorias/%d/edit", id), http.StatusSeeOther)
		return
	}

	h.flash.Set(w, r, "success", "Categoría actualizada exitosamente.")
	http.Redirect(w, r, "/categorias", http.StatusSeeOther)
}

func (h *CategoryHandler) DeleteCategoryPost(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, models.ErrCategoryHasProducts):
			h.flash.Set(w, r, "error", "No se puede eliminar la categoría porque tiene productos asociados.")
		case errors.Is(err, models.ErrNotFound):
			h.renderNotFound(w, r)
			return
		default:
			log.Printf("DeleteCategoryPost: error al eliminar la categoría %d: %v", id, err)
			h.flash.Set(w, r, "error", "No se pudo eliminar la categoría.")
		}
		http.Redirect(w, r, "/categorias", http.StatusSeeOther)
		return
	}

	h.flash.Set(w, r, "success", "Categoría eliminada exitosamente.")
	http.Redirect(w, r, "/categorias", http.StatusSeeOther)
}

func (h *CategoryHandler) CategoryProductsPage(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.GetIDParam(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}

	page := helpers.GetPageParam(r)
	category, products, pager, err := h.service.ProductsByCategory(r.Context(), id, page)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.renderNotFound(w, r)
			return
		}
		log.Printf("CategoryProductsPage: error al listar productos de la categoría %d: %v", id, err)
		http.Redirect(w, r, "/categorias", http.StatusSeeOther)
		return
	}

	data := &CategoryPageData{
		Category:   category,
		Products:   products,
		Pagination: pager,
	}
	h.populateBase(w, r, &data.BasePageData)
	data.Title = "Productos de " + category.Name
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Categorías", URL: "/categorias"},
		{Name: category.Name, URL: fmt.Sprintf("/categorias/%d", category.ID)},
		{Name: "Productos", URL: fmt.Sprintf("/categorias/%d/productos", category.ID)},
	}

	h.render.HTML(w, http.StatusOK, "categorias/productos", data)
}

func parseCheckbox(value string) bool {
	return value == "on" || value == "true" || value == "1"
}

// parseActive reads the active flag. An absent field defaults to true; the
// forms send a hidden "0" followed by the checkbox value, so the last value
// wins.
func parseActive(r *http.Request) bool {
	values := r.PostForm["active"]
	if len(values) == 0 {
		return true
	}
	return parseCheckbox(values[len(values)-1])
}

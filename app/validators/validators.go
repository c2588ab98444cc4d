package validators

import (
	"context"
	"strconv"
	"strings"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/helpers"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CategoryForm carries the raw fields of a category create/update request.
type CategoryForm struct {
	Name        string `form:"name" validate:"required,max=255"`
	Description string `form:"description"`
	Active      bool   `form:"active"`
}

// ProductForm carries the raw fields of a product create/update request.
// Numeric fields arrive as strings from the form body and are normalized
// during validation.
type ProductForm struct {
	Code        string `form:"code" validate:"required,max=50"`
	Name        string `form:"name" validate:"required,max=255"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"required,numeric"`
	Stock       string `form:"stock" validate:"required,numeric"`
	CategoryID  string `form:"category_id" validate:"required,numeric"`
	Active      bool   `form:"active"`
}

type CategoryLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}

type ProductLookup interface {
	ExistsByCode(ctx context.Context, code string, excludeID uint) (bool, error)
}

// Validator checks field sets against the per-entity rule sets and resolves
// the uniqueness and reference rules against the stores. excludeID > 0 marks
// the update path, where the row being updated is left out of uniqueness
// checks.
type Validator struct {
	validate   *validator.Validate
	categories CategoryLookup
	products   ProductLookup
}

func NewValidator(categories CategoryLookup, products ProductLookup) *Validator {
	return &Validator{
		validate:   validator.New(),
		categories: categories,
		products:   products,
	}
}

// ValidateCategory returns the normalized category or a ValidationError with
// every violated rule.
func (v *Validator) ValidateCategory(ctx context.Context, form CategoryForm, excludeID uint) (*models.Category, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)

	vErr := v.structErrors(&form)

	if _, failed := vErr.Fields["name"]; !failed {
		exists, err := v.categories.ExistsByName(ctx, form.Name, excludeID)
		if err != nil {
			return nil, err
		}
		if exists {
			vErr.Add("name", "El nombre ya está en uso.")
		}
	}

	if vErr.HasErrors() {
		return nil, vErr
	}

	return &models.Category{
		Name:        form.Name,
		Description: form.Description,
		Active:      form.Active,
	}, nil
}

// ValidateProduct returns the normalized product or a ValidationError with
// every violated rule. The price is rounded half away from zero to two
// fractional digits; the category reference must resolve to an existing row.
func (v *Validator) ValidateProduct(ctx context.Context, form ProductForm, excludeID uint) (*models.Product, error) {
	form.Code = strings.TrimSpace(form.Code)
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	form.Price = strings.TrimSpace(form.Price)
	form.Stock = strings.TrimSpace(form.Stock)
	form.CategoryID = strings.TrimSpace(form.CategoryID)

	vErr := v.structErrors(&form)

	var price decimal.Decimal
	if _, failed := vErr.Fields["price"]; !failed {
		parsed, err := decimal.NewFromString(form.Price)
		if err != nil {
			vErr.Add("price", "El campo price debe ser un número.")
		} else if parsed.IsNegative() {
			vErr.Add("price", "El precio no puede ser negativo.")
		} else {
			price = parsed.Round(2)
		}
	}

	var stock int
	if _, failed := vErr.Fields["stock"]; !failed {
		parsed, err := strconv.Atoi(form.Stock)
		if err != nil {
			vErr.Add("stock", "El stock debe ser un número entero.")
		} else if parsed < 0 {
			vErr.Add("stock", "El stock no puede ser negativo.")
		} else {
			stock = parsed
		}
	}

	var categoryID uint
	if _, failed := vErr.Fields["category_id"]; !failed {
		parsed, err := strconv.ParseUint(form.CategoryID, 10, 64)
		if err != nil {
			vErr.Add("category_id", "La categoría seleccionada no existe.")
		} else {
			category, lookupErr := v.categories.GetByID(ctx, uint(parsed))
			if lookupErr != nil {
				return nil, lookupErr
			}
			if category == nil {
				vErr.Add("category_id", "La categoría seleccionada no existe.")
			} else {
				categoryID = category.ID
			}
		}
	}

	if _, failed := vErr.Fields["code"]; !failed {
		exists, err := v.products.ExistsByCode(ctx, form.Code, excludeID)
		if err != nil {
			return nil, err
		}
		if exists {
			vErr.Add("code", "El código ya está en uso.")
		}
	}

	if vErr.HasErrors() {
		return nil, vErr
	}

	return &models.Product{
		Code:        form.Code,
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		Active:      form.Active,
	}, nil
}

func (v *Validator) structErrors(form interface{}) *models.ValidationError {
	vErr := models.NewValidationError()
	if err := v.validate.Struct(form); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for field, message := range helpers.FormatValidationErrors(validationErrors) {
				vErr.Add(field, message)
			}
		}
	}
	return vErr
}

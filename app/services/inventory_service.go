package services

import (
	"context"
	"errors"
	"log"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/models"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/repositories"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/utils/pagination"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/validators"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// InventoryService is the single dependency of the HTTP handlers. It runs
// the validation layer over incoming field sets and applies the store
// operations.
type InventoryService struct {
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	validator    *validators.Validator
}

func NewInventoryService(
	categoryRepo repositories.CategoryRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	validator *validators.Validator,
) *InventoryService {
	return &InventoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		validator:    validator,
	}
}

func (s *InventoryService) ListCategories(ctx context.Context, page int) ([]models.Category, pagination.Pagination, error) {
	if page < 1 {
		page = 1
	}
	limit := pagination.DefaultPageSize
	categories, total, err := s.categoryRepo.GetPaginated(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}
	return categories, pagination.New(page, limit, total), nil
}

func (s *InventoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, models.ErrNotFound
	}
	return category, nil
}

func (s *InventoryService) ActiveCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetActive(ctx)
}

func (s *InventoryService) CreateCategory(ctx context.Context, form validators.CategoryForm) (*models.Category, error) {
	category, err := s.validator.ValidateCategory(ctx, form, 0)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, s.translateDuplicate(err, "name", "El nombre ya está en uso.")
	}
	return category, nil
}

func (s *InventoryService) UpdateCategory(ctx context.Context, id uint, form validators.CategoryForm) (*models.Category, error) {
	existing, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	validated, err := s.validator.ValidateCategory(ctx, form, id)
	if err != nil {
		return nil, err
	}

	existing.Name = validated.Name
	existing.Description = validated.Description
	existing.Active = validated.Active

	if err := s.categoryRepo.Update(ctx, existing); err != nil {
		return nil, s.translateDuplicate(err, "name", "El nombre ya está en uso.")
	}
	return existing, nil
}

// DeleteCategory refuses the delete while products reference the category
// and reports it as ErrCategoryHasProducts.
func (s *InventoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *InventoryService) ListProducts(ctx context.Context, page int) ([]models.Product, pagination.Pagination, error) {
	if page < 1 {
		page = 1
	}
	limit := pagination.DefaultPageSize
	products, total, err := s.productRepo.GetPaginated(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}
	return products, pagination.New(page, limit, total), nil
}

// ProductsByCategory returns the category together with one page of its
// products, with a single category lookup for both the existence check and
// the page heading.
func (s *InventoryService) ProductsByCategory(ctx context.Context, categoryID uint, page int) (*models.Category, []models.Product, pagination.Pagination, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, pagination.Pagination{}, err
	}

	if page < 1 {
		page = 1
	}
	limit := pagination.DefaultPageSize
	products, total, err := s.productRepo.GetByCategoryPaginated(ctx, categoryID, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, pagination.Pagination{}, err
	}
	return category, products, pagination.New(page, limit, total), nil
}

func (s *InventoryService) SearchProducts(ctx context.Context, keyword string, page int) ([]models.Product, pagination.Pagination, error) {
	if page < 1 {
		page = 1
	}
	limit := pagination.DefaultPageSize
	products, total, err := s.productRepo.SearchPaginated(ctx, keyword, limit, (page-1)*limit)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}
	return products, pagination.New(page, limit, total), nil
}

func (s *InventoryService) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.GetActive(ctx)
}

func (s *InventoryService) InactiveProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.GetInactive(ctx)
}

func (s *InventoryService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, models.ErrNotFound
	}
	return product, nil
}

func (s *InventoryService) CreateProduct(ctx context.Context, form validators.ProductForm) (*models.Product, error) {
	product, err := s.validator.ValidateProduct(ctx, form, 0)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, s.translateDuplicate(err, "code", "El código ya está en uso.")
	}
	return product, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, id uint, form validators.ProductForm) (*models.Product, error) {
	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	validated, err := s.validator.ValidateProduct(ctx, form, id)
	if err != nil {
		return nil, err
	}

	existing.Code = validated.Code
	existing.Name = validated.Name
	existing.Description = validated.Description
	existing.Price = validated.Price
	existing.Stock = validated.Stock
	existing.CategoryID = validated.CategoryID
	existing.Category = models.Category{}
	existing.Active = validated.Active

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, s.translateDuplicate(err, "code", "El código ya está en uso.")
	}
	return existing, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id uint) error {
	return s.productRepo.Delete(ctx, id)
}

// translateDuplicate maps a unique-index violation raised by the storage
// engine into the same field-level error the uniqueness probe produces. Two
// concurrent creates with the same value both pass the probe; the losing
// writer ends up here.
func (s *InventoryService) translateDuplicate(err error, field, message string) error {
	var mysqlErr *mysql.MySQLError
	if (errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry) ||
		errors.Is(err, gorm.ErrDuplicatedKey) {
		log.Printf("InventoryService: duplicate %s rejected by storage: %v", field, err)
		vErr := models.NewValidationError()
		vErr.Add(field, message)
		return vErr
	}
	return err
}

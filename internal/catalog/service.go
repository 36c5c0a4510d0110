package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bodegadosparcas/bodega-backend/pkg/db"
	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/bodegadosparcas/bodega-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryAll is the storefront sentinel meaning "no category filter".
const CategoryAll = "Todos"

// Service exposes catalog browsing plus admin product/category management.
// Mutations return the refreshed collection so clients never patch state
// locally after a write.
type Service interface {
	ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)

	CreateProduct(ctx context.Context, input CreateProductInput) ([]ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) ([]ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) ([]ProductDTO, error)

	CreateCategory(ctx context.Context, input CreateCategoryInput) ([]CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) ([]CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) ([]CategoryDTO, error)
}

// ListFilter narrows the public product listing. Category and Search are
// conjunctive. The CategoryAll sentinel (or empty) skips the category filter.
type ListFilter struct {
	Category        string
	Search          string
	IncludeInactive bool
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name           string
	Description    *string
	CategoryID     uuid.UUID
	Price          decimal.Decimal
	PromoPrice     *decimal.Decimal
	ImageURL       *string
	Stock          int
	IsActive       bool
	IsFeatured     bool
	Specifications types.Specifications
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	CategoryID     *uuid.UUID
	Price          *decimal.Decimal
	PromoPrice     *decimal.Decimal
	ClearPromo     bool
	ImageURL       *string
	Stock          *int
	IsActive       *bool
	IsFeatured     *bool
	Specifications *types.Specifications
}

// CreateCategoryInput holds the payload to create a category.
type CreateCategoryInput struct {
	Name     string
	Icon     *string
	Position int
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name     *string
	Icon     *string
	Position *int
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ListProducts returns products matching the filter. Category and search are
// applied together; an unknown category name yields an empty list.
func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	query := productQuery{
		Search:     filter.Search,
		OnlyActive: !filter.IncludeInactive,
	}

	if name := strings.TrimSpace(filter.Category); !isAllCategories(name) {
		category, err := s.repo.FindCategoryByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []ProductDTO{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		query.CategoryID = &category.ID
	}

	products, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return NewProductDTOs(products), nil
}

// GetProduct loads a single product.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// ListCategories returns all categories in display order.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return NewCategoryDTOs(categories), nil
}

// CreateProduct validates pricing, inserts the product, and returns the
// refreshed product list.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) ([]ProductDTO, error) {
	if err := validatePricing(input.Price, input.PromoPrice); err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estoque não pode ser negativo")
	}
	if err := s.ensureCategoryExists(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		Price:          input.Price,
		PromoPrice:     input.PromoPrice,
		ImageURL:       input.ImageURL,
		Stock:          input.Stock,
		IsActive:       input.IsActive,
		IsFeatured:     input.IsFeatured,
		Specifications: input.Specifications,
	}
	if _, err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	return s.refreshedProducts(ctx)
}

// UpdateProduct applies the partial update and returns the refreshed list.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) ([]ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.CategoryID != nil {
		if err := s.ensureCategoryExists(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "estoque não pode ser negativo")
	}

	applyProductUpdate(product, input)
	if err := validatePricing(product.Price, product.PromoPrice); err != nil {
		return nil, err
	}

	// Save would persist the preloaded association too; detach it first.
	product.Category = nil
	if _, err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	return s.refreshedProducts(ctx)
}

// DeleteProduct removes the product and returns the refreshed list.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) ([]ProductDTO, error) {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "produto não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return s.refreshedProducts(ctx)
}

// CreateCategory enforces the unique name inside a transaction and returns
// the refreshed category list.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) ([]CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nome da categoria é obrigatório")
	}
	if strings.EqualFold(name, CategoryAll) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nome de categoria reservado")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.FindCategoryByName(ctx, name); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "categoria já existe")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}

		category := &models.Category{Name: name, Icon: input.Icon, Position: input.Position}
		if _, err := txRepo.CreateCategory(ctx, category); err != nil {
			if db.IsUniqueViolation(err, "idx_categories_name") {
				return pkgerrors.New(pkgerrors.CodeConflict, "categoria já existe")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}

	return s.refreshedCategories(ctx)
}

// UpdateCategory applies the partial update and returns the refreshed list.
func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) ([]CategoryDTO, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "categoria não encontrada")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nome da categoria é obrigatório")
		}
		if strings.EqualFold(name, CategoryAll) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nome de categoria reservado")
		}
		if !strings.EqualFold(name, category.Name) {
			if _, err := s.repo.FindCategoryByName(ctx, name); err == nil {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "categoria já existe")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
			}
		}
		category.Name = name
	}
	if input.Icon != nil {
		category.Icon = input.Icon
	}
	if input.Position != nil {
		category.Position = *input.Position
	}

	if _, err := s.repo.UpdateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "idx_categories_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "categoria já existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}

	return s.refreshedCategories(ctx)
}

// DeleteCategory refuses to orphan products and returns the refreshed list.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) ([]CategoryDTO, error) {
	if _, err := s.repo.FindCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "categoria não encontrada")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	count, err := s.repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	if count > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "categoria possui produtos")
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}

	return s.refreshedCategories(ctx)
}

func (s *service) ensureCategoryExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "categoria não encontrada")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return nil
}

func (s *service) refreshedProducts(ctx context.Context) ([]ProductDTO, error) {
	return s.ListProducts(ctx, ListFilter{IncludeInactive: true})
}

func (s *service) refreshedCategories(ctx context.Context) ([]CategoryDTO, error) {
	return s.ListCategories(ctx)
}

func isAllCategories(name string) bool {
	return name == "" || strings.EqualFold(name, CategoryAll) || strings.EqualFold(name, "all")
}

func validatePricing(price decimal.Decimal, promo *decimal.Decimal) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "preço não pode ser negativo")
	}
	if promo != nil {
		if promo.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "preço promocional não pode ser negativo")
		}
		if promo.GreaterThan(price) {
			return pkgerrors.New(pkgerrors.CodeValidation, "preço promocional não pode exceder o preço")
		}
	}
	return nil
}

func applyProductUpdate(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ClearPromo {
		product.PromoPrice = nil
	} else if input.PromoPrice != nil {
		product.PromoPrice = input.PromoPrice
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.Specifications != nil {
		product.Specifications = *input.Specifications
	}
}

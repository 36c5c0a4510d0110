package catalog

import (
	"time"

	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/bodegadosparcas/bodega-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the catalog payload returned to clients.
type ProductDTO struct {
	ID             uuid.UUID            `json:"id"`
	Name           string               `json:"name"`
	Description    *string              `json:"description,omitempty"`
	CategoryID     uuid.UUID            `json:"category_id"`
	CategoryName   string               `json:"category_name,omitempty"`
	Price          decimal.Decimal      `json:"price"`
	PromoPrice     *decimal.Decimal     `json:"promo_price,omitempty"`
	EffectivePrice decimal.Decimal      `json:"effective_price"`
	ImageURL       *string              `json:"image_url,omitempty"`
	Stock          int                  `json:"stock"`
	IsActive       bool                 `json:"is_active"`
	IsFeatured     bool                 `json:"is_featured"`
	Specifications types.Specifications `json:"specifications,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// CategoryDTO represents a storefront category.
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      *string   `json:"icon,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		CategoryID:     product.CategoryID,
		Price:          product.Price,
		PromoPrice:     product.PromoPrice,
		EffectivePrice: product.EffectivePrice(),
		ImageURL:       product.ImageURL,
		Stock:          product.Stock,
		IsActive:       product.IsActive,
		IsFeatured:     product.IsFeatured,
		Specifications: product.Specifications,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
	if product.Category != nil {
		dto.CategoryName = product.Category.Name
	}
	return dto
}

// NewProductDTOs maps a slice of models preserving order.
func NewProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = *NewProductDTO(&products[i])
	}
	return dtos
}

// NewCategoryDTO builds a DTO from the persisted model.
func NewCategoryDTO(category *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		Icon:      category.Icon,
		Position:  category.Position,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// NewCategoryDTOs maps a slice of models preserving order.
func NewCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i := range categories {
		dtos[i] = *NewCategoryDTO(&categories[i])
	}
	return dtos
}

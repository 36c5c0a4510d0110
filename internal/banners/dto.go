package banners

import (
	"time"

	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/google/uuid"
)

// BannerDTO is the carousel banner payload.
type BannerDTO struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	ImageURL  string     `json:"image_url"`
	LinkURL   *string    `json:"link_url,omitempty"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Position  int        `json:"position"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewBannerDTO builds a DTO from the persisted model.
func NewBannerDTO(banner *models.Banner) *BannerDTO {
	return &BannerDTO{
		ID:        banner.ID,
		Title:     banner.Title,
		ImageURL:  banner.ImageURL,
		LinkURL:   banner.LinkURL,
		ProductID: banner.ProductID,
		Position:  banner.Position,
		IsActive:  banner.IsActive,
		CreatedAt: banner.CreatedAt,
	}
}

// NewBannerDTOs maps a slice of models preserving order.
func NewBannerDTOs(banners []models.Banner) []BannerDTO {
	dtos := make([]BannerDTO, len(banners))
	for i := range banners {
		dtos[i] = *NewBannerDTO(&banners[i])
	}
	return dtos
}

package models

import (
	"time"

	"github.com/bodegadosparcas/bodega-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog listing.
type Product struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Name           string               `gorm:"column:name;not null"`
	Description    *string              `gorm:"column:description"`
	CategoryID     uuid.UUID            `gorm:"column:category_id;type:uuid;not null"`
	Category       *Category            `gorm:"foreignKey:CategoryID"`
	Price          decimal.Decimal      `gorm:"column:price;type:numeric(12,2);not null"`
	PromoPrice     *decimal.Decimal     `gorm:"column:promo_price;type:numeric(12,2)"`
	ImageURL       *string              `gorm:"column:image_url"`
	Stock          int                  `gorm:"column:stock;not null;default:0"`
	IsActive       bool                 `gorm:"column:is_active;not null"`
	IsFeatured     bool                 `gorm:"column:is_featured;not null;default:false"`
	Specifications types.Specifications `gorm:"column:specifications;type:jsonb"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EffectivePrice returns the promotional price when set, otherwise the list
// price. Cart lines are always charged at this value.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.Price
}

// OnPromotion reports whether the product carries a promotional price.
func (p *Product) OnPromotion() bool {
	return p.PromoPrice != nil
}

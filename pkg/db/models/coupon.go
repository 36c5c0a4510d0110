package models

import (
	"time"

	"github.com/bodegadosparcas/bodega-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon is a percentage discount code. Codes are stored upper-cased.
type Coupon struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Code         string             `gorm:"column:code;type:text;not null;uniqueIndex:idx_coupons_code"`
	DiscountType enums.DiscountType `gorm:"column:discount_type;type:text;not null;default:percentage"`
	Percentage   decimal.Decimal    `gorm:"column:percentage;type:numeric(5,2);not null"`
	IsActive     bool               `gorm:"column:is_active;not null"`
	ExpiresAt    *time.Time         `gorm:"column:expires_at"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Coupon) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the coupon has an expiry in the past.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Redeemable reports whether the coupon can still be applied to a cart.
func (c *Coupon) Redeemable(now time.Time) bool {
	return c.IsActive && !c.Expired(now)
}

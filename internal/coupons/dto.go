package coupons

import (
	"time"

	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponDTO represents the coupon payload returned to clients.
type CouponDTO struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	DiscountType string          `json:"discount_type"`
	Percentage   decimal.Decimal `json:"percentage"`
	IsActive     bool            `json:"is_active"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewCouponDTO builds a DTO from the persisted model.
func NewCouponDTO(coupon *models.Coupon) *CouponDTO {
	return &CouponDTO{
		ID:           coupon.ID,
		Code:         coupon.Code,
		DiscountType: string(coupon.DiscountType),
		Percentage:   coupon.Percentage,
		IsActive:     coupon.IsActive,
		ExpiresAt:    coupon.ExpiresAt,
		CreatedAt:    coupon.CreatedAt,
		UpdatedAt:    coupon.UpdatedAt,
	}
}

// NewCouponDTOs maps a slice of models preserving order.
func NewCouponDTOs(coupons []models.Coupon) []CouponDTO {
	dtos := make([]CouponDTO, len(coupons))
	for i := range coupons {
		dtos[i] = *NewCouponDTO(&coupons[i])
	}
	return dtos
}

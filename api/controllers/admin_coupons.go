package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bodegadosparcas/bodega-backend/api/responses"
	"github.com/bodegadosparcas/bodega-backend/api/validators"
	couponsvc "github.com/bodegadosparcas/bodega-backend/internal/coupons"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/bodegadosparcas/bodega-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type createCouponRequest struct {
	Code       string          `json:"code" validate:"required"`
	Percentage decimal.Decimal `json:"percentage" validate:"required"`
	IsActive   bool            `json:"is_active"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
}

type updateCouponRequest struct {
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
	ClearExpiry bool             `json:"clear_expiry,omitempty"`
}

// AdminListCoupons lists every coupon, expired ones included.
func AdminListCoupons(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		coupons, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"coupons": coupons})
	}
}

// AdminCreateCoupon issues a new coupon code.
func AdminCreateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		var payload createCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		coupon, err := svc.Create(ctx, couponsvc.CreateCouponInput{
			Code:       payload.Code,
			Percentage: payload.Percentage,
			IsActive:   payload.IsActive,
			ExpiresAt:  payload.ExpiresAt,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// AdminUpdateCoupon patches a coupon. The code itself never changes.
func AdminUpdateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "couponId"), "couponId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		coupon, err := svc.Update(ctx, id, couponsvc.UpdateCouponInput{
			Percentage:  payload.Percentage,
			IsActive:    payload.IsActive,
			ExpiresAt:   payload.ExpiresAt,
			ClearExpiry: payload.ClearExpiry,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

// AdminDeleteCoupon removes a coupon.
func AdminDeleteCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "couponId"), "couponId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

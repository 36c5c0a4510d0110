package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bodegadosparcas/bodega-backend/api/responses"
	"github.com/bodegadosparcas/bodega-backend/api/validators"
	"github.com/bodegadosparcas/bodega-backend/internal/catalog"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/bodegadosparcas/bodega-backend/pkg/logger"
	"github.com/bodegadosparcas/bodega-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Name           string               `json:"name" validate:"required"`
	Description    *string              `json:"description,omitempty"`
	CategoryID     uuid.UUID            `json:"category_id" validate:"required"`
	Price          decimal.Decimal      `json:"price" validate:"required"`
	PromoPrice     *decimal.Decimal     `json:"promo_price,omitempty"`
	ImageURL       *string              `json:"image_url,omitempty"`
	Stock          int                  `json:"stock" validate:"min=0"`
	IsActive       *bool                `json:"is_active,omitempty"`
	IsFeatured     *bool                `json:"is_featured,omitempty"`
	Specifications types.Specifications `json:"specifications,omitempty" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Name           *string               `json:"name,omitempty"`
	Description    *string               `json:"description,omitempty"`
	CategoryID     *uuid.UUID            `json:"category_id,omitempty"`
	Price          *decimal.Decimal      `json:"price,omitempty"`
	PromoPrice     *decimal.Decimal      `json:"promo_price,omitempty"`
	ClearPromo     bool                  `json:"clear_promo,omitempty"`
	ImageURL       *string               `json:"image_url,omitempty"`
	Stock          *int                  `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsActive       *bool                 `json:"is_active,omitempty"`
	IsFeatured     *bool                 `json:"is_featured,omitempty"`
	Specifications *types.Specifications `json:"specifications,omitempty" validate:"omitempty,dive"`
}

// AdminListProducts lists the full catalog, inactive products included.
func AdminListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListProducts(ctx, catalog.ListFilter{IncludeInactive: true})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// AdminCreateProduct inserts a product and returns the refreshed catalog.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}
		isFeatured := false
		if payload.IsFeatured != nil {
			isFeatured = *payload.IsFeatured
		}

		products, err := svc.CreateProduct(ctx, catalog.CreateProductInput{
			Name:           payload.Name,
			Description:    payload.Description,
			CategoryID:     payload.CategoryID,
			Price:          payload.Price,
			PromoPrice:     payload.PromoPrice,
			ImageURL:       payload.ImageURL,
			Stock:          payload.Stock,
			IsActive:       isActive,
			IsFeatured:     isFeatured,
			Specifications: payload.Specifications,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"products": products})
	}
}

// AdminUpdateProduct patches a product and returns the refreshed catalog.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := svc.UpdateProduct(ctx, id, catalog.UpdateProductInput{
			Name:           payload.Name,
			Description:    payload.Description,
			CategoryID:     payload.CategoryID,
			Price:          payload.Price,
			PromoPrice:     payload.PromoPrice,
			ClearPromo:     payload.ClearPromo,
			ImageURL:       payload.ImageURL,
			Stock:          payload.Stock,
			IsActive:       payload.IsActive,
			IsFeatured:     payload.IsFeatured,
			Specifications: payload.Specifications,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// AdminDeleteProduct removes a product and returns the refreshed catalog.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := svc.DeleteProduct(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

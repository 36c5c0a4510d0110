package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bodegadosparcas/bodega-backend/api/responses"
	"github.com/bodegadosparcas/bodega-backend/api/validators"
	bannersvc "github.com/bodegadosparcas/bodega-backend/internal/banners"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/bodegadosparcas/bodega-backend/pkg/logger"
	"github.com/google/uuid"
)

type createBannerRequest struct {
	Title     string     `json:"title" validate:"required"`
	ImageURL  string     `json:"image_url" validate:"required,url"`
	LinkURL   *string    `json:"link_url,omitempty" validate:"omitempty,url"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Position  int        `json:"position" validate:"min=0"`
	IsActive  bool       `json:"is_active"`
}

type updateBannerRequest struct {
	Title        *string    `json:"title,omitempty"`
	ImageURL     *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	LinkURL      *string    `json:"link_url,omitempty" validate:"omitempty,url"`
	ClearLink    bool       `json:"clear_link,omitempty"`
	ProductID    *uuid.UUID `json:"product_id,omitempty"`
	ClearProduct bool       `json:"clear_product,omitempty"`
	Position     *int       `json:"position,omitempty" validate:"omitempty,min=0"`
	IsActive     *bool      `json:"is_active,omitempty"`
}

// AdminListBanners lists every banner, inactive ones included.
func AdminListBanners(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		banners, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"banners": banners})
	}
}

// AdminCreateBanner inserts a carousel banner.
func AdminCreateBanner(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		var payload createBannerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		banner, err := svc.Create(ctx, bannersvc.CreateBannerInput{
			Title:     payload.Title,
			ImageURL:  payload.ImageURL,
			LinkURL:   payload.LinkURL,
			ProductID: payload.ProductID,
			Position:  payload.Position,
			IsActive:  payload.IsActive,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, banner)
	}
}

// AdminUpdateBanner patches a banner.
func AdminUpdateBanner(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "bannerId"), "bannerId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateBannerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		banner, err := svc.Update(ctx, id, bannersvc.UpdateBannerInput{
			Title:        payload.Title,
			ImageURL:     payload.ImageURL,
			LinkURL:      payload.LinkURL,
			ClearLink:    payload.ClearLink,
			ProductID:    payload.ProductID,
			ClearProduct: payload.ClearProduct,
			Position:     payload.Position,
			IsActive:     payload.IsActive,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, banner)
	}
}

// AdminDeleteBanner removes a banner.
func AdminDeleteBanner(svc bannersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "banner service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "bannerId"), "bannerId")
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

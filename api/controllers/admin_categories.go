package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bodegadosparcas/bodega-backend/api/responses"
	"github.com/bodegadosparcas/bodega-backend/api/validators"
	"github.com/bodegadosparcas/bodega-backend/internal/catalog"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/bodegadosparcas/bodega-backend/pkg/logger"
)

type createCategoryRequest struct {
	Name     string  `json:"name" validate:"required"`
	Icon     *string `json:"icon,omitempty"`
	Position int     `json:"position" validate:"min=0"`
}

type updateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

// AdminCreateCategory inserts a category and returns the refreshed list.
func AdminCreateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		categories, err := svc.CreateCategory(ctx, catalog.CreateCategoryInput{
			Name:     payload.Name,
			Icon:     payload.Icon,
			Position: payload.Position,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"categories": categories})
	}
}

// AdminUpdateCategory patches a category and returns the refreshed list.
func AdminUpdateCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "categoryId"), "categoryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		categories, err := svc.UpdateCategory(ctx, id, catalog.UpdateCategoryInput{
			Name:     payload.Name,
			Icon:     payload.Icon,
			Position: payload.Position,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

// AdminDeleteCategory removes an empty category and returns the refreshed
// list. Categories still holding products are rejected.
func AdminDeleteCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "categoryId"), "categoryId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		categories, err := svc.DeleteCategory(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

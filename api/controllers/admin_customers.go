package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bodegadosparcas/bodega-backend/api/responses"
	"github.com/bodegadosparcas/bodega-backend/api/validators"
	usersvc "github.com/bodegadosparcas/bodega-backend/internal/users"
	"github.com/bodegadosparcas/bodega-backend/pkg/enums"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/bodegadosparcas/bodega-backend/pkg/logger"
)

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer admin"`
}

type setBannedRequest struct {
	IsBanned bool `json:"is_banned"`
}

// AdminListCustomers lists customer accounts for the admin panel.
func AdminListCustomers(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		customers, err := svc.ListCustomers(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"customers": customers})
	}
}

// AdminSetCustomerRole promotes or demotes an account.
func AdminSetCustomerRole(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload setRoleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(payload.Role)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "papel de usuário inválido"))
			return
		}

		user, err := svc.SetRole(ctx, id, role)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AdminSetCustomerBanned bans or unbans an account. Banning also revokes any
// live session.
func AdminSetCustomerBanned(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload setBannedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		user, err := svc.SetBanned(ctx, id, payload.IsBanned)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

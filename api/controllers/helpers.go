package controllers

import (
	"net/http"

	"github.com/bodegadosparcas/bodega-backend/api/middleware"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/google/uuid"
)

// currentUserID resolves the authenticated user from the request context.
func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciais ausentes")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "credenciais inválidas")
	}
	return id, nil
}

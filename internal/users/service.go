package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/bodegadosparcas/bodega-backend/pkg/enums"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRevoker interface {
	RevokeUser(ctx context.Context, userID string) error
}

// Service exposes the admin-side customer management operations.
type Service interface {
	ListCustomers(ctx context.Context) ([]UserDTO, error)
	SetRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (*UserDTO, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) (*UserDTO, error)
}

type service struct {
	repo     *Repository
	sessions sessionRevoker
}

// NewService constructs a user administration service.
func NewService(repo *Repository, sessions sessionRevoker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session revoker required")
	}
	return &service{repo: repo, sessions: sessions}, nil
}

// ListCustomers returns all customer accounts.
func (s *service) ListCustomers(ctx context.Context) ([]UserDTO, error) {
	list, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return NewUserDTOs(list), nil
}

// SetRole switches an account between customer and admin.
func (s *service) SetRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (*UserDTO, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "papel de usuário inválido")
	}

	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if _, err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return NewUserDTO(user), nil
}

// SetBanned flips the ban flag. Banning immediately revokes any live
// session so the account cannot keep acting on an old token.
func (s *service) SetBanned(ctx context.Context, id uuid.UUID, banned bool) (*UserDTO, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsBanned = banned
	if _, err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}

	if banned {
		if err := s.sessions.RevokeUser(ctx, user.ID.String()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke sessions")
		}
	}
	return NewUserDTO(user), nil
}

func (s *service) loadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "usuário não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

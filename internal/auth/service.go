package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bodegadosparcas/bodega-backend/internal/users"
	pkgauth "github.com/bodegadosparcas/bodega-backend/pkg/auth"
	"github.com/bodegadosparcas/bodega-backend/pkg/auth/session"
	"github.com/bodegadosparcas/bodega-backend/pkg/config"
	"github.com/bodegadosparcas/bodega-backend/pkg/db"
	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/bodegadosparcas/bodega-backend/pkg/enums"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/bodegadosparcas/bodega-backend/pkg/security"
	"github.com/bodegadosparcas/bodega-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionManager interface {
	Generate(ctx context.Context, userID, accessID string) (string, error)
	Rotate(ctx context.Context, userID, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, userID, accessID string) error
	RevokeUser(ctx context.Context, userID string) error
}

// Service owns account lifecycle: sign-up, login, token refresh, logout, and
// the customer's own profile surface.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*SessionDTO, error)
	Login(ctx context.Context, email, password string) (*SessionDTO, error)
	Logout(ctx context.Context, userID uuid.UUID, accessID string) error
	Refresh(ctx context.Context, accessToken, refreshToken string) (*SessionDTO, error)
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	UpdateAddress(ctx context.Context, userID uuid.UUID, address types.Address) (*users.UserDTO, error)
}

type service struct {
	repo     *users.Repository
	dbClient *db.Client
	sessions sessionManager
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	now      func() time.Time
}

// NewService constructs the authentication service.
func NewService(repo *users.Repository, dbClient *db.Client, sessions sessionManager, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		now:      time.Now,
	}, nil
}

// Register creates a customer account. The email must be unused; the check
// runs inside a transaction with the unique index as backstop.
func (s *service) Register(ctx context.Context, input RegisterInput) (*SessionDTO, error) {
	name := strings.TrimSpace(input.Name)
	email := users.NormalizeEmail(input.Email)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe seu nome")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe seu e-mail")
	}
	if len(input.Password) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "senha deve ter pelo menos 6 caracteres")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "e-mail já cadastrado")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}

		user := &models.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Phone:        input.Phone,
			Role:         enums.UserRoleCustomer,
		}
		if _, err := txRepo.Create(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "idx_users_email") {
				return pkgerrors.New(pkgerrors.CodeConflict, "e-mail já cadastrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
		}
		created = user
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register user")
	}

	return s.issueSession(ctx, created)
}

// Login verifies credentials. Wrong email and wrong password share one
// message; a banned account is told apart and loses any live session.
func (s *service) Login(ctx context.Context, email, password string) (*SessionDTO, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciais inválidas")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "credenciais inválidas")
	}

	if user.IsBanned {
		if err := s.sessions.RevokeUser(ctx, user.ID.String()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke sessions")
		}
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "conta suspensa")
	}

	now := s.now()
	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: touch last login")
	}
	// Keep the snapshot in step with the row so the session reflects this login.
	user.LastLoginAt = &now

	return s.issueSession(ctx, user)
}

// Logout revokes the session tied to the presented token.
func (s *service) Logout(ctx context.Context, userID uuid.UUID, accessID string) error {
	if err := s.sessions.Revoke(ctx, userID.String(), accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// Refresh rotates the refresh token and mints a fresh access token. The old
// access token may be expired; only its signature and jti matter here.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*SessionDTO, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sessão inválida")
	}

	if claims.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sessão inválida")
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sessão inválida")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user.IsBanned {
		if err := s.sessions.RevokeUser(ctx, user.ID.String()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke sessions")
		}
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "conta suspensa")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, user.ID.String(), claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sessão inválida")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	signed, err := s.mintToken(user, newAccessID)
	if err != nil {
		return nil, err
	}

	return &SessionDTO{
		AccessToken:  signed,
		RefreshToken: newRefresh,
		User:         *users.NewUserDTO(user),
	}, nil
}

// Me returns the caller's own account.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return users.NewUserDTO(user), nil
}

// UpdateAddress replaces the caller's delivery address.
func (s *service) UpdateAddress(ctx context.Context, userID uuid.UUID, address types.Address) (*users.UserDTO, error) {
	if !address.Complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "endereço incompleto")
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAddress(ctx, user.ID, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update address")
	}
	user.Address = &address
	return users.NewUserDTO(user), nil
}

func (s *service) issueSession(ctx context.Context, user *models.User) (*SessionDTO, error) {
	accessID := session.NewAccessID()

	refresh, err := s.sessions.Generate(ctx, user.ID.String(), accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	signed, err := s.mintToken(user, accessID)
	if err != nil {
		return nil, err
	}

	return &SessionDTO{
		AccessToken:  signed,
		RefreshToken: refresh,
		User:         *users.NewUserDTO(user),
	}, nil
}

func (s *service) mintToken(user *models.User, accessID string) (string, error) {
	signed, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return signed, nil
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

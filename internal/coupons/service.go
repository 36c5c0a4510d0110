package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bodegadosparcas/bodega-backend/pkg/db"
	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/bodegadosparcas/bodega-backend/pkg/enums"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes coupon lookup for the cart plus admin management.
type Service interface {
	// Redeem resolves a code to a redeemable coupon, classifying failures
	// as distinct user-facing errors.
	Redeem(ctx context.Context, code string) (*CouponDTO, error)

	List(ctx context.Context) ([]CouponDTO, error)
	Create(ctx context.Context, input CreateCouponInput) (*CouponDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCouponInput) (*CouponDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateCouponInput holds the payload to create a coupon.
type CreateCouponInput struct {
	Code       string
	Percentage decimal.Decimal
	IsActive   bool
	ExpiresAt  *time.Time
}

// UpdateCouponInput holds optional mutation values for a coupon.
type UpdateCouponInput struct {
	Percentage  *decimal.Decimal
	IsActive    *bool
	ExpiresAt   *time.Time
	ClearExpiry bool
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	now      func() time.Time
}

// NewService constructs a coupon service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, now: time.Now}, nil
}

// NormalizeCode upper-cases and trims a user-supplied coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Redeem classifies the code: not found, inactive, and expired each carry a
// distinct message so the storefront can show the right feedback.
func (s *service) Redeem(ctx context.Context, code string) (*CouponDTO, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe o código do cupom")
	}

	coupon, err := s.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cupom não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	if !coupon.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cupom inativo")
	}
	if coupon.Expired(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cupom expirado")
	}

	return NewCouponDTO(coupon), nil
}

// List returns all coupons for the admin panel.
func (s *service) List(ctx context.Context) ([]CouponDTO, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return NewCouponDTOs(coupons), nil
}

// Create enforces the unique code inside a transaction.
func (s *service) Create(ctx context.Context, input CreateCouponInput) (*CouponDTO, error) {
	code := NormalizeCode(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe o código do cupom")
	}
	if err := validatePercentage(input.Percentage); err != nil {
		return nil, err
	}

	var created *models.Coupon
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.FindByCode(ctx, code); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "cupom já existe")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
		}

		coupon := &models.Coupon{
			Code:         code,
			DiscountType: enums.DiscountTypePercentage,
			Percentage:   input.Percentage,
			IsActive:     input.IsActive,
			ExpiresAt:    input.ExpiresAt,
		}
		if _, err := txRepo.Create(ctx, coupon); err != nil {
			if db.IsUniqueViolation(err, "idx_coupons_code") {
				return pkgerrors.New(pkgerrors.CodeConflict, "cupom já existe")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert coupon")
		}
		created = coupon
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}

	return NewCouponDTO(created), nil
}

// Update applies the partial update. Codes are immutable once issued.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCouponInput) (*CouponDTO, error) {
	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cupom não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	if input.Percentage != nil {
		if err := validatePercentage(*input.Percentage); err != nil {
			return nil, err
		}
		coupon.Percentage = *input.Percentage
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if input.ClearExpiry {
		coupon.ExpiresAt = nil
	} else if input.ExpiresAt != nil {
		coupon.ExpiresAt = input.ExpiresAt
	}

	if _, err := s.repo.Update(ctx, coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update coupon")
	}
	return NewCouponDTO(coupon), nil
}

// Delete removes the coupon.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cupom não encontrado")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete coupon")
	}
	return nil
}

func validatePercentage(value decimal.Decimal) error {
	if !value.IsPositive() || value.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percentual do cupom deve estar entre 0 e 100")
	}
	return nil
}

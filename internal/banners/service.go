package banners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	pkgerrors "github.com/bodegadosparcas/bodega-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the storefront carousel plus admin banner management.
type Service interface {
	// ListActive returns the banners the home carousel shows, in order.
	ListActive(ctx context.Context) ([]BannerDTO, error)

	List(ctx context.Context) ([]BannerDTO, error)
	Create(ctx context.Context, input CreateBannerInput) (*BannerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*BannerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateBannerInput holds the payload to create a banner.
type CreateBannerInput struct {
	Title     string
	ImageURL  string
	LinkURL   *string
	ProductID *uuid.UUID
	Position  int
	IsActive  bool
}

// UpdateBannerInput holds optional mutation values for a banner.
type UpdateBannerInput struct {
	Title        *string
	ImageURL     *string
	LinkURL      *string
	ClearLink    bool
	ProductID    *uuid.UUID
	ClearProduct bool
	Position     *int
	IsActive     *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a banner service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banner repository required")
	}
	return &service{repo: repo}, nil
}

// ListActive returns only active banners, carousel order.
func (s *service) ListActive(ctx context.Context) ([]BannerDTO, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	return NewBannerDTOs(list), nil
}

// List returns all banners for the admin panel.
func (s *service) List(ctx context.Context) ([]BannerDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	return NewBannerDTOs(list), nil
}

// Create inserts a new banner.
func (s *service) Create(ctx context.Context, input CreateBannerInput) (*BannerDTO, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe o título do banner")
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe a imagem do banner")
	}

	banner := &models.Banner{
		Title:     strings.TrimSpace(input.Title),
		ImageURL:  strings.TrimSpace(input.ImageURL),
		LinkURL:   input.LinkURL,
		ProductID: input.ProductID,
		Position:  input.Position,
		IsActive:  input.IsActive,
	}
	if _, err := s.repo.Create(ctx, banner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert banner")
	}
	return NewBannerDTO(banner), nil
}

// Update applies the partial update.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*BannerDTO, error) {
	banner, err := s.loadBanner(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe o título do banner")
		}
		banner.Title = strings.TrimSpace(*input.Title)
	}
	if input.ImageURL != nil {
		if strings.TrimSpace(*input.ImageURL) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe a imagem do banner")
		}
		banner.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.ClearLink {
		banner.LinkURL = nil
	} else if input.LinkURL != nil {
		banner.LinkURL = input.LinkURL
	}
	if input.ClearProduct {
		banner.ProductID = nil
	} else if input.ProductID != nil {
		banner.ProductID = input.ProductID
	}
	if input.Position != nil {
		banner.Position = *input.Position
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	if _, err := s.repo.Update(ctx, banner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update banner")
	}
	return NewBannerDTO(banner), nil
}

// Delete removes the banner.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadBanner(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete banner")
	}
	return nil
}

func (s *service) loadBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner não encontrado")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load banner")
	}
	return banner, nil
}

package banners

import (
	"context"

	"github.com/bodegadosparcas/bodega-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires banner persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a banner by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

// List returns every banner for the admin panel, carousel order first.
func (r *Repository) List(ctx context.Context) ([]models.Banner, error) {
	var list []models.Banner
	if err := r.db.WithContext(ctx).
		Order("position, created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListActive returns only the banners the storefront should show.
func (r *Repository) ListActive(ctx context.Context) ([]models.Banner, error) {
	var list []models.Banner
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position, created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Create inserts a banner row.
func (r *Repository) Create(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

// Update persists all mutable fields of the banner.
func (r *Repository) Update(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.db.WithContext(ctx).Save(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete removes the banner row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id).Error
}

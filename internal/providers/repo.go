package providers

import (
	"context"

	"github.com/devmarket-mx/tienda-backend/internal/repo"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists suppliers.
type Repository struct {
	repo.Base
}

// NewRepository constructs a providers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new supplier.
func (r *Repository) Create(ctx context.Context, provider *models.Provider) error {
	return r.DB(ctx).Create(provider).Error
}

// FindByID loads one supplier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Provider, error) {
	var provider models.Provider
	if err := r.DB(ctx).First(&provider, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// List returns all suppliers ordered by name.
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]models.Provider, error) {
	query := r.DB(ctx).Order("name ASC")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var providers []models.Provider
	if err := query.Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// Update applies column updates to one supplier.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	result := r.DB(ctx).
		Model(&models.Provider{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountProducts returns how many catalog entries reference the supplier.
func (r *Repository) CountProducts(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Product{}).
		Where("provider_id = ?", id).
		Count(&count).Error
	return count, err
}

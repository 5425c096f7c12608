package lease

import (
	"context"
	"time"

	"github.com/devmarket-mx/tienda-backend/internal/repo"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists software leases.
type Repository struct {
	repo.Base
}

// NewRepository constructs a lease repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new lease row.
func (r *Repository) Create(ctx context.Context, lease *models.Lease) error {
	return r.DB(ctx).Create(lease).Error
}

// ListByUser returns the user's leases, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Lease, error) {
	var leases []models.Lease
	err := r.DB(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	return leases, nil
}

// ListAll returns every lease, optionally filtered by status.
func (r *Repository) ListAll(ctx context.Context, status *enums.LeaseStatus) ([]models.Lease, error) {
	query := r.DB(ctx).Preload("Product").Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var leases []models.Lease
	if err := query.Find(&leases).Error; err != nil {
		return nil, err
	}
	return leases, nil
}

// FindByID loads one lease.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	var lease models.Lease
	err := r.DB(ctx).Preload("Product").First(&lease, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// UpdateStatus transitions a lease to the given status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LeaseStatus) error {
	result := r.DB(ctx).
		Model(&models.Lease{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus groups lease counts per status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.LeaseStatus]int64, error) {
	type row struct {
		Status enums.LeaseStatus
		Total  int64
	}
	var rows []row
	err := r.DB(ctx).
		Model(&models.Lease{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.LeaseStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// ExpireDue flips active leases whose end date has passed to expired and
// returns how many rows changed.
func (r *Repository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Lease{}).
		Where("status = ? AND end_date < ?", enums.LeaseStatusActive, now).
		UpdateColumn("status", enums.LeaseStatusExpired)
	return result.RowsAffected, result.Error
}

package orders

import (
	"context"
	"time"

	"github.com/devmarket-mx/tienda-backend/internal/repo"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/devmarket-mx/tienda-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists orders and their line items.
type Repository struct {
	repo.Base
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts the order together with its items in one transaction.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// FindByID loads an order with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUser loads an order owned by the given user.
func (r *Repository) FindByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns a cursor page of the user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error) {
	return r.list(ctx, params, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID)
	})
}

// ListAll returns a cursor page of every order, optionally status-filtered.
func (r *Repository) ListAll(ctx context.Context, status *enums.OrderStatus, params pagination.Params) ([]models.Order, string, error) {
	return r.list(ctx, params, func(q *gorm.DB) *gorm.DB {
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q
	})
}

func (r *Repository) list(ctx context.Context, params pagination.Params, scope func(*gorm.DB) *gorm.DB) ([]models.Order, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	query := scope(r.DB(ctx).Preload("Items")).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[len(orders)-1]
		next = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return orders, next, nil
}

// SetPreference records the payment preference handed back by the provider.
func (r *Repository) SetPreference(ctx context.Context, orderID uuid.UUID, preferenceID, initPoint string) error {
	return r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"preference_id": preferenceID,
			"init_point":    initPoint,
		}).Error
}

// UpdateStatus transitions the order and stamps paid_at / canceled_at.
func (r *Repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus, at time.Time) error {
	updates := map[string]any{"status": status}
	switch status {
	case enums.OrderStatusPaid:
		updates["paid_at"] = at
	case enums.OrderStatusCanceled:
		updates["canceled_at"] = at
	}
	result := r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus groups order counts per status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	type row struct {
		Status enums.OrderStatus
		Total  int64
	}
	var rows []row
	err := r.DB(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.OrderStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// RevenueSince sums paid order totals created at or after the given time.
func (r *Repository) RevenueSince(ctx context.Context, since time.Time) (string, error) {
	var revenue *string
	err := r.DB(ctx).
		Model(&models.Order{}).
		Select("SUM(total)").
		Where("status IN ? AND created_at >= ?", paidLikeStatuses(), since).
		Scan(&revenue).Error
	if err != nil {
		return "0", err
	}
	if revenue == nil {
		return "0", nil
	}
	return *revenue, nil
}

func paidLikeStatuses() []enums.OrderStatus {
	return []enums.OrderStatus{
		enums.OrderStatusPaid,
		enums.OrderStatusPreparing,
		enums.OrderStatusShipped,
		enums.OrderStatusDelivered,
	}
}

package address

import (
	"context"

	"github.com/devmarket-mx/tienda-backend/internal/repo"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists user addresses. Flag exclusivity is handled in the
// transactional methods; plain reads go through the Base connection.
type Repository struct {
	repo.Base
}

// NewRepository constructs an address repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListByUser returns every address owned by the user, primary first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	err := r.DB(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindByID loads an address owned by the given user.
func (r *Repository) FindByID(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	var addr models.Address
	err := r.DB(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&addr).Error
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// Create inserts the address, clearing sibling flags it claims inside one
// transaction so flag exclusivity holds under concurrent writes.
func (r *Repository) Create(ctx context.Context, addr *models.Address) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return r.createTx(tx, addr)
	})
}

// Update applies column updates, clearing sibling flags being claimed.
func (r *Repository) Update(ctx context.Context, addr *models.Address, updates map[string]any) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return r.updateTx(tx, addr, updates)
	})
}

func (r *Repository) createTx(tx *gorm.DB, addr *models.Address) error {
	if addr.IsPrimary {
		if err := clearFlag(tx, addr.UserID, "is_primary", uuid.Nil); err != nil {
			return err
		}
	}
	if addr.IsBilling {
		if err := clearFlag(tx, addr.UserID, "is_billing", uuid.Nil); err != nil {
			return err
		}
	}
	return tx.Create(addr).Error
}

func (r *Repository) updateTx(tx *gorm.DB, addr *models.Address, updates map[string]any) error {
	if claimed, ok := updates["is_primary"].(bool); ok && claimed {
		if err := clearFlag(tx, addr.UserID, "is_primary", addr.ID); err != nil {
			return err
		}
	}
	if claimed, ok := updates["is_billing"].(bool); ok && claimed {
		if err := clearFlag(tx, addr.UserID, "is_billing", addr.ID); err != nil {
			return err
		}
	}
	return tx.Model(addr).Updates(updates).Error
}

// Delete removes the address owned by the given user.
func (r *Repository) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	result := r.DB(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func clearFlag(tx *gorm.DB, userID uuid.UUID, column string, except uuid.UUID) error {
	query := tx.Model(&models.Address{}).Where("user_id = ?", userID)
	if except != uuid.Nil {
		query = query.Where("id <> ?", except)
	}
	return query.UpdateColumn(column, false).Error
}

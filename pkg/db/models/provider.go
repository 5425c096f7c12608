package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider is a supplier the back-office sources inventory from.
type Provider struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	ContactName string    `gorm:"column:contact_name;not null"`
	Email       string    `gorm:"column:email;not null"`
	Phone       *string   `gorm:"column:phone"`
	TaxID       *string   `gorm:"column:tax_id"`
	City        *string   `gorm:"column:city"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

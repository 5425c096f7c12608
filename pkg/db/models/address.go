package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is a user-owned shipping or billing destination. At most one row
// per user carries is_primary and at most one carries is_billing; the address
// service clears the flags on sibling rows inside the same transaction.
type Address struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Alias         string    `gorm:"column:alias;not null"`
	Street        string    `gorm:"column:street;not null"`
	ExtNumber     string    `gorm:"column:ext_number;not null"`
	IntNumber     *string   `gorm:"column:int_number"`
	Neighborhood  string    `gorm:"column:neighborhood;not null"`
	City          string    `gorm:"column:city;not null"`
	State         string    `gorm:"column:state;not null"`
	PostalCode    string    `gorm:"column:postal_code;not null"`
	Country       string    `gorm:"column:country;not null;default:'MX'"`
	CrossStreets  *string   `gorm:"column:cross_streets"`
	ReferenceNote *string   `gorm:"column:reference_note"`
	IsPrimary     bool      `gorm:"column:is_primary;not null;default:false"`
	IsBilling     bool      `gorm:"column:is_billing;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

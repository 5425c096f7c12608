package models

import (
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lease is a software-rental line. EndDate is always derived from
// start + count × unit-days and never edited independently.
type Lease struct {
	ID          uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	ProductID   uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	Product     *Product              `gorm:"foreignKey:ProductID"`
	OrderID     *uuid.UUID            `gorm:"column:order_id;type:uuid"`
	PeriodUnit  enums.LeasePeriodUnit `gorm:"column:period_unit;type:text;not null"`
	PeriodCount int                   `gorm:"column:period_count;not null"`
	StartDate   time.Time             `gorm:"column:start_date;not null"`
	EndDate     time.Time             `gorm:"column:end_date;not null"`
	Status      enums.LeaseStatus     `gorm:"column:status;type:text;not null;default:'requested'"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,4);not null"`
	Tax         decimal.Decimal       `gorm:"column:tax;type:numeric(12,4);not null"`
	Total       decimal.Decimal       `gorm:"column:total;type:numeric(12,4);not null"`
	Notes       *string               `gorm:"column:notes"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

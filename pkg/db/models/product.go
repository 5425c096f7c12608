package models

import (
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Leasable products price per lease period unit;
// everything else prices per piece.
type Product struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Brand       string            `gorm:"column:brand;not null"`
	Category    string            `gorm:"column:category;not null;index"`
	Kind        enums.ProductKind `gorm:"column:kind;type:text;not null;default:'physical'"`
	Description *string           `gorm:"column:description"`
	UnitPrice   decimal.Decimal   `gorm:"column:unit_price;type:numeric(12,4);not null"`
	Stock       int               `gorm:"column:stock;not null;default:0"`
	ImageURL    *string           `gorm:"column:image_url"`
	Tags        pq.StringArray    `gorm:"column:tags;type:text[]"`
	ProviderID  *uuid.UUID        `gorm:"column:provider_id;type:uuid"`
	Provider    *Provider         `gorm:"foreignKey:ProviderID"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

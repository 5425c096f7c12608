package models

import (
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a checkout result. Monetary columns hold unrounded decimals;
// total = subtotal - discount + shipping_cost + tax.
type Order struct {
	ID                uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Status            enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending_payment'"`
	Subtotal          decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,4);not null"`
	Discount          decimal.Decimal     `gorm:"column:discount;type:numeric(12,4);not null;default:0"`
	ShippingCost      decimal.Decimal     `gorm:"column:shipping_cost;type:numeric(12,4);not null;default:0"`
	Tax               decimal.Decimal     `gorm:"column:tax;type:numeric(12,4);not null;default:0"`
	Total             decimal.Decimal     `gorm:"column:total;type:numeric(12,4);not null"`
	PaymentMethod     string              `gorm:"column:payment_method;not null;default:'preference'"`
	ShippingAddressID *uuid.UUID          `gorm:"column:shipping_address_id;type:uuid"`
	BillingAddressID  *uuid.UUID          `gorm:"column:billing_address_id;type:uuid"`
	ShippingLine      *types.ShippingLine `gorm:"column:shipping_line;type:jsonb;serializer:json"`
	PreferenceID      *string             `gorm:"column:preference_id"`
	InitPoint         *string             `gorm:"column:init_point"`
	Notes             *string             `gorm:"column:notes"`
	Items             []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaidAt            *time.Time          `gorm:"column:paid_at"`
	CanceledAt        *time.Time          `gorm:"column:canceled_at"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is a snapshot of one cart line at submission time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	Name      string          `gorm:"column:name;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,4);not null"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(12,4);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

package products

import (
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
)

// CreateRequest carries the admin payload for a new catalog entry.
type CreateRequest struct {
	Name        string     `json:"name" validate:"required"`
	Brand       string     `json:"brand" validate:"required"`
	Category    string     `json:"category" validate:"required"`
	Kind        string     `json:"kind" validate:"required,oneof=physical digital leasable"`
	Description *string    `json:"description,omitempty"`
	UnitPrice   string     `json:"unit_price" validate:"required"`
	Stock       int        `json:"stock" validate:"min=0"`
	ImageURL    *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags        []string   `json:"tags,omitempty"`
	ProviderID  *uuid.UUID `json:"provider_id,omitempty"`
}

// UpdateRequest carries the mutable catalog fields.
type UpdateRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Brand       *string    `json:"brand,omitempty" validate:"omitempty,min=1"`
	Category    *string    `json:"category,omitempty" validate:"omitempty,min=1"`
	Description *string    `json:"description,omitempty"`
	UnitPrice   *string    `json:"unit_price,omitempty"`
	Stock       *int       `json:"stock,omitempty" validate:"omitempty,min=0"`
	ImageURL    *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	Tags        []string   `json:"tags,omitempty"`
	ProviderID  *uuid.UUID `json:"provider_id,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	Category   string
	Kind       *enums.ProductKind
	Search     string
	OnlyActive bool
}

// Summary is the public shape of a catalog entry.
type Summary struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Brand       string            `json:"brand"`
	Category    string            `json:"category"`
	Kind        enums.ProductKind `json:"kind"`
	Description *string           `json:"description,omitempty"`
	UnitPrice   string            `json:"unit_price"`
	Stock       int               `json:"stock"`
	ImageURL    *string           `json:"image_url,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	ProviderID  *uuid.UUID        `json:"provider_id,omitempty"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Page is a cursor-paginated catalog listing.
type Page struct {
	Products   []Summary `json:"products"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func summarize(p *models.Product) Summary {
	return Summary{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Kind:        p.Kind,
		Description: p.Description,
		UnitPrice:   types.FormatAmount(p.UnitPrice),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Tags:        p.Tags,
		ProviderID:  p.ProviderID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

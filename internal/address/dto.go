package address

import (
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/google/uuid"
)

// CreateRequest carries the fields accepted when saving a new address.
type CreateRequest struct {
	Alias         string  `json:"alias" validate:"required"`
	Street        string  `json:"street" validate:"required"`
	ExtNumber     string  `json:"ext_number" validate:"required"`
	IntNumber     *string `json:"int_number,omitempty"`
	Neighborhood  string  `json:"neighborhood" validate:"required"`
	City          string  `json:"city" validate:"required"`
	State         string  `json:"state" validate:"required"`
	PostalCode    string  `json:"postal_code" validate:"required,len=5,numeric"`
	Country       string  `json:"country,omitempty"`
	CrossStreets  *string `json:"cross_streets,omitempty"`
	ReferenceNote *string `json:"reference_note,omitempty"`
	IsPrimary     bool    `json:"is_primary"`
	IsBilling     bool    `json:"is_billing"`
}

// UpdateRequest carries the mutable fields of an existing address.
type UpdateRequest struct {
	Alias         *string `json:"alias,omitempty" validate:"omitempty,min=1"`
	Street        *string `json:"street,omitempty" validate:"omitempty,min=1"`
	ExtNumber     *string `json:"ext_number,omitempty" validate:"omitempty,min=1"`
	IntNumber     *string `json:"int_number,omitempty"`
	Neighborhood  *string `json:"neighborhood,omitempty" validate:"omitempty,min=1"`
	City          *string `json:"city,omitempty" validate:"omitempty,min=1"`
	State         *string `json:"state,omitempty" validate:"omitempty,min=1"`
	PostalCode    *string `json:"postal_code,omitempty" validate:"omitempty,len=5,numeric"`
	CrossStreets  *string `json:"cross_streets,omitempty"`
	ReferenceNote *string `json:"reference_note,omitempty"`
	IsPrimary     *bool   `json:"is_primary,omitempty"`
	IsBilling     *bool   `json:"is_billing,omitempty"`
}

// Summary is the public shape of a saved address.
type Summary struct {
	ID            uuid.UUID `json:"id"`
	Alias         string    `json:"alias"`
	Street        string    `json:"street"`
	ExtNumber     string    `json:"ext_number"`
	IntNumber     *string   `json:"int_number,omitempty"`
	Neighborhood  string    `json:"neighborhood"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	CrossStreets  *string   `json:"cross_streets,omitempty"`
	ReferenceNote *string   `json:"reference_note,omitempty"`
	IsPrimary     bool      `json:"is_primary"`
	IsBilling     bool      `json:"is_billing"`
	CreatedAt     time.Time `json:"created_at"`
}

func summarize(addr *models.Address) Summary {
	return Summary{
		ID:            addr.ID,
		Alias:         addr.Alias,
		Street:        addr.Street,
		ExtNumber:     addr.ExtNumber,
		IntNumber:     addr.IntNumber,
		Neighborhood:  addr.Neighborhood,
		City:          addr.City,
		State:         addr.State,
		PostalCode:    addr.PostalCode,
		Country:       addr.Country,
		CrossStreets:  addr.CrossStreets,
		ReferenceNote: addr.ReferenceNote,
		IsPrimary:     addr.IsPrimary,
		IsBilling:     addr.IsBilling,
		CreatedAt:     addr.CreatedAt,
	}
}

package checkout

import (
	"github.com/devmarket-mx/tienda-backend/internal/shipping"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
)

// SubmitRequest carries the checkout submission payload. The shipping
// address must already be saved; billing falls back to shipping when unset.
type SubmitRequest struct {
	AddressID        uuid.UUID  `json:"direccion_id" validate:"required"`
	BillingAddressID *uuid.UUID `json:"direccion_facturacion_id,omitempty"`
}

// Quote is the response of the standalone shipping quote endpoint.
type Quote struct {
	ShippingLine types.ShippingLine `json:"shipping_line"`
	Options      []shipping.Option  `json:"options"`
}

// Breakdown is the monetary breakdown echoed to the storefront.
type Breakdown struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// SubmitResponse reports the created order and the payment redirect.
type SubmitResponse struct {
	OrderID          uuid.UUID          `json:"order_id"`
	State            State              `json:"state"`
	RedirectURL      string             `json:"redirect_url"`
	InitPoint        string             `json:"init_point"`
	SandboxInitPoint string             `json:"sandbox_init_point,omitempty"`
	Breakdown        Breakdown          `json:"breakdown"`
	ShippingLine     types.ShippingLine `json:"shipping_line"`
}

package cart

import (
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// UpdateItemRequest sets the absolute quantity of a cart line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// Line is one product entry in the cart view.
type Line struct {
	ProductID uuid.UUID         `json:"product_id"`
	Name      string            `json:"name"`
	Kind      enums.ProductKind `json:"kind"`
	ImageURL  *string           `json:"image_url,omitempty"`
	Quantity  int               `json:"quantity"`
	UnitPrice string            `json:"unit_price"`
	LineTotal string            `json:"line_total"`
}

// Summary is the aggregated cart view returned to the storefront.
type Summary struct {
	Items    []Line `json:"items"`
	Count    int    `json:"count"`
	Subtotal string `json:"subtotal"`
}

// CountResponse carries the badge count for the cart icon.
type CountResponse struct {
	Count int `json:"count"`
}

func buildSummary(items []models.CartItem) Summary {
	lines := make([]Line, 0, len(items))
	subtotal := decimal.Zero
	for i := range items {
		item := &items[i]
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		line := Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: types.FormatAmount(item.UnitPrice),
			LineTotal: types.FormatAmount(lineTotal),
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			line.Kind = item.Product.Kind
			line.ImageURL = item.Product.ImageURL
		}
		lines = append(lines, line)
	}
	return Summary{
		Items:    lines,
		Count:    len(lines),
		Subtotal: types.FormatAmount(subtotal),
	}
}

package orders

import (
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
)

// ItemSummary is one order line in API responses.
type ItemSummary struct {
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	UnitPrice string     `json:"unit_price"`
	LineTotal string     `json:"line_total"`
}

// Summary is the public shape of an order.
type Summary struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	Status       enums.OrderStatus   `json:"status"`
	Subtotal     string              `json:"subtotal"`
	ShippingCost string              `json:"shipping_cost"`
	Tax          string              `json:"tax"`
	Total        string              `json:"total"`
	ShippingLine *types.ShippingLine `json:"shipping_line,omitempty"`
	InitPoint    *string             `json:"init_point,omitempty"`
	Items        []ItemSummary       `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	PaidAt       *time.Time          `json:"paid_at,omitempty"`
}

// UpdateStatusRequest carries an admin status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Page is a cursor-paginated order listing.
type Page struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// Summarize converts an order model into its API shape.
func Summarize(order *models.Order) Summary {
	items := make([]ItemSummary, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, ItemSummary{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: types.FormatAmount(item.UnitPrice),
			LineTotal: types.FormatAmount(item.LineTotal),
		})
	}
	return Summary{
		ID:           order.ID,
		UserID:       order.UserID,
		Status:       order.Status,
		Subtotal:     types.FormatAmount(order.Subtotal),
		ShippingCost: types.FormatAmount(order.ShippingCost),
		Tax:          types.FormatAmount(order.Tax),
		Total:        types.FormatAmount(order.Total),
		ShippingLine: order.ShippingLine,
		InitPoint:    order.InitPoint,
		Items:        items,
		CreatedAt:    order.CreatedAt,
		PaidAt:       order.PaidAt,
	}
}

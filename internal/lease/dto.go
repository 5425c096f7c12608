package lease

import (
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
)

// RequestLease carries the storefront payload for a new software lease.
type RequestLease struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	PeriodUnit  string    `json:"period_unit" validate:"required,oneof=daily weekly monthly yearly"`
	PeriodCount int       `json:"period_count" validate:"required,min=1"`
	StartDate   string    `json:"start_date" validate:"required"`
	Notes       *string   `json:"notes,omitempty"`
}

// Summary is the public shape of a lease.
type Summary struct {
	ID          uuid.UUID             `json:"id"`
	ProductID   uuid.UUID             `json:"product_id"`
	ProductName string                `json:"product_name,omitempty"`
	PeriodUnit  enums.LeasePeriodUnit `json:"period_unit"`
	PeriodCount int                   `json:"period_count"`
	StartDate   string                `json:"start_date"`
	EndDate     string                `json:"end_date"`
	Status      enums.LeaseStatus     `json:"status"`
	Price       string                `json:"price"`
	Tax         string                `json:"tax"`
	Total       string                `json:"total"`
	CreatedAt   time.Time             `json:"created_at"`
}

const dateLayout = "2006-01-02"

func summarize(lease *models.Lease) Summary {
	s := Summary{
		ID:          lease.ID,
		ProductID:   lease.ProductID,
		PeriodUnit:  lease.PeriodUnit,
		PeriodCount: lease.PeriodCount,
		StartDate:   lease.StartDate.Format(dateLayout),
		EndDate:     lease.EndDate.Format(dateLayout),
		Status:      lease.Status,
		Price:       types.FormatAmount(lease.Price),
		Tax:         types.FormatAmount(lease.Tax),
		Total:       types.FormatAmount(lease.Total),
		CreatedAt:   lease.CreatedAt,
	}
	if lease.Product != nil {
		s.ProductName = lease.Product.Name
	}
	return s
}

package shipping

import (
	"context"
	"errors"
	"fmt"

	"github.com/devmarket-mx/tienda-backend/pkg/carrier"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/metrics"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quote is the selected shipping option for a destination.
type Quote struct {
	Line    types.ShippingLine
	Total   decimal.Decimal
	Options []Option
}

// Option is one candidate rate exposed for display.
type Option struct {
	Carrier      string `json:"carrier"`
	Service      string `json:"service"`
	DeliveryDays int    `json:"delivery_days"`
	Total        string `json:"total"`
	Selected     bool   `json:"selected"`
}

// Service defines the behavior needed by checkout and the quote endpoint.
type Service interface {
	QuoteForAddress(ctx context.Context, userID, addressID uuid.UUID) (*Quote, error)
}

type carrierQuoter interface {
	Quote(ctx context.Context, req carrier.QuoteRequest) ([]carrier.Rate, error)
}

type addressFinder interface {
	FindByID(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error)
}

type service struct {
	carrier   carrierQuoter
	addresses addressFinder
	metrics   *metrics.CheckoutMetrics
}

// ServiceParams bundles the dependencies required to build a shipping service.
type ServiceParams struct {
	Carrier   carrierQuoter
	Addresses addressFinder
	Metrics   *metrics.CheckoutMetrics
}

// NewService constructs a shipping service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Carrier == nil {
		return nil, fmt.Errorf("carrier client is required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address repository is required")
	}
	return &service{
		carrier:   params.Carrier,
		addresses: params.Addresses,
		metrics:   params.Metrics,
	}, nil
}

// QuoteForAddress fetches candidate rates for the user's saved address and
// picks the cheapest successful one. Every unsuccessful or invalid candidate
// is ignored; if none survive the caller gets a retryable no-rate error.
func (s *service) QuoteForAddress(ctx context.Context, userID, addressID uuid.UUID) (*Quote, error) {
	addr, err := s.addresses.FindByID(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
	}

	rates, err := s.carrier.Quote(ctx, carrier.QuoteRequest{
		Street:     addr.Street,
		ExtNumber:  addr.ExtNumber,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	})
	if err != nil {
		s.metrics.IncQuote("carrier_error")
		return nil, err
	}

	selectedIdx := selectRateIndex(rates)
	if selectedIdx < 0 {
		s.metrics.IncQuote("no_rate")
		return nil, pkgerrors.New(pkgerrors.CodeNoRate, "no successful shipping rate for destination")
	}
	s.metrics.IncQuote("ok")
	selected := rates[selectedIdx]

	options := make([]Option, 0, len(rates))
	for i, rate := range rates {
		if !rate.Success {
			continue
		}
		options = append(options, Option{
			Carrier:      rate.Carrier,
			Service:      rate.Service,
			DeliveryDays: rate.DeliveryDays,
			Total:        types.FormatAmount(rate.Total),
			Selected:     i == selectedIdx,
		})
	}

	return &Quote{
		Line: types.ShippingLine{
			Carrier:      selected.Carrier,
			Service:      selected.Service,
			DeliveryDays: selected.DeliveryDays,
			Total:        types.FormatAmount(selected.Total),
		},
		Total:   selected.Total,
		Options: options,
	}, nil
}

// SelectRate picks the cheapest successful rate. Ties break on fewer
// delivery days, then carrier name, so the choice is deterministic.
func SelectRate(rates []carrier.Rate) (carrier.Rate, bool) {
	idx := selectRateIndex(rates)
	if idx < 0 {
		return carrier.Rate{}, false
	}
	return rates[idx], true
}

func selectRateIndex(rates []carrier.Rate) int {
	best := -1
	for i, rate := range rates {
		if !rate.Success {
			continue
		}
		if best < 0 || better(rate, rates[best]) {
			best = i
		}
	}
	return best
}

func better(a, b carrier.Rate) bool {
	if cmp := a.Total.Cmp(b.Total); cmp != 0 {
		return cmp < 0
	}
	if a.DeliveryDays != b.DeliveryDays {
		return a.DeliveryDays < b.DeliveryDays
	}
	return a.Carrier < b.Carrier
}

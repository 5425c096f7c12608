package shipping

import (
	"context"
	"testing"

	"github.com/devmarket-mx/tienda-backend/pkg/carrier"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func rate(total string, days int, name string, success bool) carrier.Rate {
	return carrier.Rate{
		Total:        decimal.RequireFromString(total),
		DeliveryDays: days,
		Carrier:      name,
		Service:      "std",
		Success:      success,
	}
}

func TestSelectRatePicksCheapestSuccessful(t *testing.T) {
	selected, ok := SelectRate([]carrier.Rate{
		rate("80.00", 2, "estafeta", true),
		rate("65.50", 4, "fedex", true),
		rate("10.00", 1, "dhl", false),
	})
	require.True(t, ok)
	require.Equal(t, "fedex", selected.Carrier)
}

func TestSelectRateBreaksTiesOnDeliveryDays(t *testing.T) {
	selected, ok := SelectRate([]carrier.Rate{
		rate("65.50", 4, "fedex", true),
		rate("65.50", 2, "estafeta", true),
	})
	require.True(t, ok)
	require.Equal(t, "estafeta", selected.Carrier)
}

func TestSelectRateNoSuccessfulRates(t *testing.T) {
	_, ok := SelectRate([]carrier.Rate{
		rate("80.00", 2, "estafeta", false),
	})
	require.False(t, ok)

	_, ok = SelectRate(nil)
	require.False(t, ok)
}

type fakeQuoter struct {
	rates   []carrier.Rate
	err     error
	lastReq carrier.QuoteRequest
}

func (f *fakeQuoter) Quote(_ context.Context, req carrier.QuoteRequest) ([]carrier.Rate, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

type fakeAddressFinder struct {
	addr *models.Address
}

func (f *fakeAddressFinder) FindByID(_ context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	if f.addr != nil && f.addr.UserID == userID && f.addr.ID == addressID {
		return f.addr, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func seedAddress(userID uuid.UUID) *models.Address {
	return &models.Address{
		ID:         uuid.New(),
		UserID:     userID,
		Street:     "Av. Juárez",
		ExtNumber:  "12",
		City:       "Puebla",
		State:      "PUE",
		PostalCode: "72000",
		Country:    "MX",
	}
}

func TestQuoteForAddressSelectsAndFormats(t *testing.T) {
	userID := uuid.New()
	addr := seedAddress(userID)
	quoter := &fakeQuoter{rates: []carrier.Rate{
		rate("80.00", 2, "estafeta", true),
		rate("65.50", 4, "fedex", true),
	}}
	svc, err := NewService(ServiceParams{Carrier: quoter, Addresses: &fakeAddressFinder{addr: addr}})
	require.NoError(t, err)

	quote, err := svc.QuoteForAddress(context.Background(), userID, addr.ID)
	require.NoError(t, err)
	require.Equal(t, "fedex", quote.Line.Carrier)
	require.Equal(t, "65.50", quote.Line.Total)
	require.Equal(t, "72000", quoter.lastReq.PostalCode)
	require.Len(t, quote.Options, 2)

	selectedCount := 0
	for _, opt := range quote.Options {
		if opt.Selected {
			selectedCount++
			require.Equal(t, "fedex", opt.Carrier)
		}
	}
	require.Equal(t, 1, selectedCount)
}

func TestQuoteForAddressNoRate(t *testing.T) {
	userID := uuid.New()
	addr := seedAddress(userID)
	quoter := &fakeQuoter{rates: []carrier.Rate{rate("80.00", 2, "estafeta", false)}}
	svc, err := NewService(ServiceParams{Carrier: quoter, Addresses: &fakeAddressFinder{addr: addr}})
	require.NoError(t, err)

	_, err = svc.QuoteForAddress(context.Background(), userID, addr.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNoRate, pkgerrors.As(err).Code())
}

func TestQuoteForAddressUnknownAddress(t *testing.T) {
	svc, err := NewService(ServiceParams{Carrier: &fakeQuoter{}, Addresses: &fakeAddressFinder{}})
	require.NoError(t, err)

	_, err = svc.QuoteForAddress(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestQuoteForAddressCarrierFailurePassesThrough(t *testing.T) {
	userID := uuid.New()
	addr := seedAddress(userID)
	quoter := &fakeQuoter{err: pkgerrors.New(pkgerrors.CodeDependency, "carrier down")}
	svc, err := NewService(ServiceParams{Carrier: quoter, Addresses: &fakeAddressFinder{addr: addr}})
	require.NoError(t, err)

	_, err = svc.QuoteForAddress(context.Background(), userID, addr.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

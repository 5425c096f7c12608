package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/devmarket-mx/tienda-backend/internal/shipping"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/payments"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCart struct {
	items   []models.CartItem
	cleared bool
}

func (f *fakeCart) ListByUser(context.Context, uuid.UUID) ([]models.CartItem, error) {
	return f.items, nil
}

func (f *fakeCart) Clear(context.Context, uuid.UUID) error {
	f.cleared = true
	return nil
}

type fakeAddresses struct {
	known map[uuid.UUID]*models.Address
}

func (f *fakeAddresses) FindByID(_ context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	if addr, ok := f.known[addressID]; ok && addr.UserID == userID {
		return addr, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeShipping struct {
	quote *shipping.Quote
	err   error
	calls int
}

func (f *fakeShipping) QuoteForAddress(context.Context, uuid.UUID, uuid.UUID) (*shipping.Quote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

type fakeOrders struct {
	created        *models.Order
	preferenceID   string
	initPoint      string
	statusUpdates  []enums.OrderStatus
	createErr      error
	preferenceErr  error
}

func (f *fakeOrders) Create(_ context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = uuid.New()
	f.created = order
	return nil
}

func (f *fakeOrders) SetPreference(_ context.Context, _ uuid.UUID, preferenceID, initPoint string) error {
	if f.preferenceErr != nil {
		return f.preferenceErr
	}
	f.preferenceID = preferenceID
	f.initPoint = initPoint
	return nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _ uuid.UUID, status enums.OrderStatus, _ time.Time) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

type fakePayments struct {
	pref    *payments.Preference
	err     error
	calls   int
	lastReq payments.PreferenceRequest
}

func (f *fakePayments) CreatePreference(_ context.Context, req payments.PreferenceRequest) (*payments.Preference, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.pref, nil
}

func (f *fakePayments) Sandbox() bool { return true }

type fakeUsers struct {
	user *models.User
}

func (f *fakeUsers) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	if f.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

type submitFixture struct {
	userID    uuid.UUID
	addressID uuid.UUID
	cart      *fakeCart
	addresses *fakeAddresses
	shipping  *fakeShipping
	orders    *fakeOrders
	payments  *fakePayments
	svc       Service
}

func newSubmitFixture(t *testing.T) *submitFixture {
	t.Helper()
	userID := uuid.New()
	addr := &models.Address{ID: uuid.New(), UserID: userID, PostalCode: "72000", Country: "MX"}

	cart := &fakeCart{items: []models.CartItem{
		{
			ProductID: uuid.New(),
			Product:   &models.Product{Name: "Teclado"},
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("500.00"),
		},
	}}
	ship := &fakeShipping{quote: &shipping.Quote{
		Line: types.ShippingLine{
			Carrier: "fedex", Service: "std", DeliveryDays: 3, Total: "150.00",
		},
		Total: decimal.RequireFromString("150.00"),
	}}
	pay := &fakePayments{pref: &payments.Preference{
		ID:               "pref_1",
		InitPoint:        "https://pay.test/p/1",
		SandboxInitPoint: "https://sandbox.pay.test/p/1",
	}}
	orders := &fakeOrders{}

	svc, err := NewService(ServiceParams{
		Cart:     cart,
		Address:  &fakeAddresses{known: map[uuid.UUID]*models.Address{addr.ID: addr}},
		Shipping: ship,
		Orders:   orders,
		Payments: pay,
		Users:    &fakeUsers{user: &models.User{ID: userID, Email: "ana@example.com"}},
		TaxRate:  decimal.RequireFromString("0.16"),
	})
	require.NoError(t, err)

	return &submitFixture{
		userID:    userID,
		addressID: addr.ID,
		cart:      cart,
		shipping:  ship,
		orders:    orders,
		payments:  pay,
		svc:       svc,
	}
}

func TestSubmitHappyPath(t *testing.T) {
	fx := newSubmitFixture(t)

	resp, err := fx.svc.Submit(context.Background(), fx.userID, SubmitRequest{AddressID: fx.addressID})
	require.NoError(t, err)

	require.Equal(t, StateRedirected, resp.State)
	// sandbox mode prefers the sandbox init point
	require.Equal(t, "https://sandbox.pay.test/p/1", resp.RedirectURL)
	require.Equal(t, "https://pay.test/p/1", resp.InitPoint)

	// 2 × 500 = 1000 subtotal; tax 16% of subtotal only; shipping untaxed
	require.Equal(t, "1000.00", resp.Breakdown.Subtotal)
	require.Equal(t, "150.00", resp.Breakdown.Shipping)
	require.Equal(t, "160.00", resp.Breakdown.Tax)
	require.Equal(t, "1310.00", resp.Breakdown.Total)

	require.NotNil(t, fx.orders.created)
	require.Equal(t, enums.OrderStatusPendingPayment, fx.orders.created.Status)
	require.Equal(t, "pref_1", fx.orders.preferenceID)
	require.True(t, fx.cart.cleared)
	require.Equal(t, fx.orders.created.ID.String(), fx.payments.lastReq.ExternalReference)
	require.Equal(t, "ana@example.com", fx.payments.lastReq.PayerEmail)
}

func TestSubmitEmptyCartMakesNoOutboundCalls(t *testing.T) {
	fx := newSubmitFixture(t)
	fx.cart.items = nil

	_, err := fx.svc.Submit(context.Background(), fx.userID, SubmitRequest{AddressID: fx.addressID})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
	require.Zero(t, fx.shipping.calls)
	require.Zero(t, fx.payments.calls)
	require.Nil(t, fx.orders.created)
}

func TestSubmitUnknownAddressMakesNoOutboundCalls(t *testing.T) {
	fx := newSubmitFixture(t)

	_, err := fx.svc.Submit(context.Background(), fx.userID, SubmitRequest{AddressID: uuid.New()})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	require.Zero(t, fx.shipping.calls)
	require.Zero(t, fx.payments.calls)
}

func TestSubmitNoRateStopsBeforePayment(t *testing.T) {
	fx := newSubmitFixture(t)
	fx.shipping.err = pkgerrors.New(pkgerrors.CodeNoRate, "no successful shipping rate for destination")
	fx.shipping.quote = nil

	_, err := fx.svc.Submit(context.Background(), fx.userID, SubmitRequest{AddressID: fx.addressID})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNoRate, pkgerrors.As(err).Code())
	require.Zero(t, fx.payments.calls)
	require.Nil(t, fx.orders.created)
	require.False(t, fx.cart.cleared)
}

func TestSubmitPreferenceFailureMarksOrderFailed(t *testing.T) {
	fx := newSubmitFixture(t)
	fx.payments.err = pkgerrors.New(pkgerrors.CodeDependency, "provider down")
	fx.payments.pref = nil

	_, err := fx.svc.Submit(context.Background(), fx.userID, SubmitRequest{AddressID: fx.addressID})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())

	require.NotNil(t, fx.orders.created)
	require.Equal(t, []enums.OrderStatus{enums.OrderStatusFailed}, fx.orders.statusUpdates)
	// the cart survives so the buyer can retry
	require.False(t, fx.cart.cleared)
}

package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devmarket-mx/tienda-backend/internal/events"
	"github.com/devmarket-mx/tienda-backend/internal/pricing"
	"github.com/devmarket-mx/tienda-backend/internal/shipping"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/logger"
	"github.com/devmarket-mx/tienda-backend/pkg/metrics"
	"github.com/devmarket-mx/tienda-backend/pkg/payments"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service drives the checkout flow: quoting shipping for the chosen address
// and submitting the cart as an order with a payment redirect.
type Service interface {
	QuoteShipping(ctx context.Context, userID, addressID uuid.UUID) (*Quote, error)
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*SubmitResponse, error)
}

type cartReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type addressFinder interface {
	FindByID(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error)
}

type shippingQuoter interface {
	QuoteForAddress(ctx context.Context, userID, addressID uuid.UUID) (*shipping.Quote, error)
}

type orderWriter interface {
	Create(ctx context.Context, order *models.Order) error
	SetPreference(ctx context.Context, orderID uuid.UUID, preferenceID, initPoint string) error
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus, at time.Time) error
}

type preferenceCreator interface {
	CreatePreference(ctx context.Context, req payments.PreferenceRequest) (*payments.Preference, error)
	Sandbox() bool
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type countPublisher interface {
	Publish(ctx context.Context, event events.CartCountChanged)
}

type service struct {
	cart     cartReader
	address  addressFinder
	shipping shippingQuoter
	orders   orderWriter
	payments preferenceCreator
	users    userFinder
	bus      countPublisher
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
	taxRate  decimal.Decimal
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	Cart     cartReader
	Address  addressFinder
	Shipping shippingQuoter
	Orders   orderWriter
	Payments preferenceCreator
	Users    userFinder
	Bus      countPublisher
	Metrics  *metrics.CheckoutMetrics
	Logger   *logger.Logger
	TaxRate  decimal.Decimal
	Now      func() time.Time
}

// NewService constructs a checkout service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Address == nil {
		return nil, fmt.Errorf("address repository is required")
	}
	if params.Shipping == nil {
		return nil, fmt.Errorf("shipping service is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.Payments == nil {
		return nil, fmt.Errorf("payments client is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		cart:     params.Cart,
		address:  params.Address,
		shipping: params.Shipping,
		orders:   params.Orders,
		payments: params.Payments,
		users:    params.Users,
		bus:      params.Bus,
		metrics:  params.Metrics,
		logg:     params.Logger,
		taxRate:  params.TaxRate,
		now:      now,
	}, nil
}

// QuoteShipping exposes the shipping options for a saved address without
// touching the cart or creating anything.
func (s *service) QuoteShipping(ctx context.Context, userID, addressID uuid.UUID) (*Quote, error) {
	quote, err := s.shipping.QuoteForAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	return &Quote{ShippingLine: quote.Line, Options: quote.Options}, nil
}

// Submit runs the whole flow in one call: validates the cart and address,
// quotes shipping, persists the order, and hands it to the payment provider.
// All preconditions are checked before the first outbound call; a failed
// precondition never reaches the carrier or the payment provider.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*SubmitResponse, error) {
	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	if len(items) == 0 {
		s.metrics.IncSubmission("empty_cart")
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	addr, err := s.address.FindByID(ctx, userID, req.AddressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.IncSubmission("bad_address")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipping address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
	}

	billingID := addr.ID
	if req.BillingAddressID != nil {
		billing, err := s.address.FindByID(ctx, userID, *req.BillingAddressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.metrics.IncSubmission("bad_address")
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "billing address not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load billing address")
		}
		billingID = billing.ID
	}

	quote, err := s.shipping.QuoteForAddress(ctx, userID, req.AddressID)
	if err != nil {
		s.metrics.IncSubmission("no_rate")
		return nil, err
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	prefItems := make([]payments.PreferenceItem, 0, len(items))
	for i := range items {
		item := &items[i]
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		name := "producto"
		if item.Product != nil {
			name = item.Product.Name
		}
		productID := item.ProductID
		orderItems = append(orderItems, models.OrderItem{
			ProductID: &productID,
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
		prefItems = append(prefItems, payments.PreferenceItem{
			Title:     name,
			Quantity:  item.Quantity,
			UnitPrice: types.FormatAmount(item.UnitPrice),
		})
	}

	totals := pricing.Compute(subtotal, quote.Total, s.taxRate)

	shippingAddrID := addr.ID
	line := quote.Line
	order := &models.Order{
		UserID:            userID,
		Status:            enums.OrderStatusPendingPayment,
		Subtotal:          totals.Subtotal,
		ShippingCost:      totals.Shipping,
		Tax:               totals.Tax,
		Total:             totals.Total,
		ShippingAddressID: &shippingAddrID,
		BillingAddressID:  &billingID,
		ShippingLine:      &line,
		Items:             orderItems,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.metrics.IncSubmission("order_error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}
	s.metrics.ObserveCartSize(len(items))

	prefReq := payments.PreferenceRequest{
		ExternalReference: order.ID.String(),
		Items:             prefItems,
	}
	if user, err := s.users.FindByID(ctx, userID); err == nil {
		prefReq.PayerEmail = user.Email
	}

	pref, err := s.payments.CreatePreference(ctx, prefReq)
	if err != nil {
		// The order stays on record as failed; the buyer can retry from a
		// fresh submission with the cart intact.
		s.failOrder(ctx, order.ID)
		s.metrics.IncSubmission("preference_error")
		return nil, err
	}

	if err := s.orders.SetPreference(ctx, order.ID, pref.ID, pref.InitPoint); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record preference")
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "clear cart after checkout", err)
		}
	} else if s.bus != nil {
		s.bus.Publish(ctx, events.CartCountChanged{UserID: userID, Count: 0})
	}

	s.metrics.IncSubmission("redirected")
	return &SubmitResponse{
		OrderID:          order.ID,
		State:            StateRedirected,
		RedirectURL:      pref.RedirectURL(s.payments.Sandbox()),
		InitPoint:        pref.InitPoint,
		SandboxInitPoint: pref.SandboxInitPoint,
		Breakdown: Breakdown{
			Subtotal: types.FormatAmount(totals.Subtotal),
			Shipping: types.FormatAmount(totals.Shipping),
			Tax:      types.FormatAmount(totals.Tax),
			Total:    types.FormatAmount(totals.Total),
		},
		ShippingLine: quote.Line,
	}, nil
}

func (s *service) failOrder(ctx context.Context, orderID uuid.UUID) {
	if err := s.orders.UpdateStatus(ctx, orderID, enums.OrderStatusFailed, s.now()); err != nil && s.logg != nil {
		s.logg.Error(ctx, "mark order failed", err)
	}
}

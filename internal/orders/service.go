package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the order controllers.
type Service interface {
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error)
	GetMine(ctx context.Context, userID, orderID uuid.UUID) (*Summary, error)
	ListAll(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*Page, error)
	Get(ctx context.Context, orderID uuid.UUID) (*Summary, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*Summary, error)
}

type orderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error)
	ListAll(ctx context.Context, status *enums.OrderStatus, params pagination.Params) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus, at time.Time) error
}

// allowedTransitions captures the fulfillment lifecycle. Cancellation is
// possible until the order ships.
var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPendingPayment: {enums.OrderStatusPaid, enums.OrderStatusCanceled, enums.OrderStatusFailed},
	enums.OrderStatusPaid:           {enums.OrderStatusPreparing, enums.OrderStatusCanceled},
	enums.OrderStatusPreparing:      {enums.OrderStatusShipped, enums.OrderStatusCanceled},
	enums.OrderStatusShipped:        {enums.OrderStatusDelivered},
}

type service struct {
	repo orderRepository
	now  func() time.Time
}

// NewService constructs an orders service.
func NewService(repo orderRepository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error) {
	orders, next, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return buildPage(orders, next), nil
}

func (s *service) GetMine(ctx context.Context, userID, orderID uuid.UUID) (*Summary, error) {
	order, err := s.repo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, notFoundOrInternal(err, "load order")
	}
	summary := Summarize(order)
	return &summary, nil
}

func (s *service) ListAll(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*Page, error) {
	orders, next, err := s.repo.ListAll(ctx, status, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return buildPage(orders, next), nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*Summary, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOrInternal(err, "load order")
	}
	summary := Summarize(order)
	return &summary, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*Summary, error) {
	target, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOrInternal(err, "load order")
	}

	if !transitionAllowed(order.Status, target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target)).
			WithDetails(map[string]any{"from": order.Status, "to": target})
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, orderID, target, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	order.Status = target
	switch target {
	case enums.OrderStatusPaid:
		order.PaidAt = &now
	case enums.OrderStatusCanceled:
		order.CanceledAt = &now
	}
	summary := Summarize(order)
	return &summary, nil
}

func transitionAllowed(from, to enums.OrderStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func buildPage(orders []models.Order, next string) *Page {
	summaries := make([]Summary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, Summarize(&orders[i]))
	}
	return &Page{Orders: summaries, NextCursor: next}
}

func notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}

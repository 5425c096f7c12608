package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/devmarket-mx/tienda-backend/internal/events"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the cart controllers.
type Service interface {
	View(ctx context.Context, userID uuid.UUID) (*Summary, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*Summary, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, req UpdateItemRequest) (*Summary, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*Summary, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int, error)
}

type cartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Upsert(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	CountLines(ctx context.Context, userID uuid.UUID) (int, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type countPublisher interface {
	Publish(ctx context.Context, event events.CartCountChanged)
}

type service struct {
	repo     cartRepository
	products productFinder
	bus      countPublisher
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	CartRepo    cartRepository
	ProductRepo productFinder
	Bus         countPublisher
}

// NewService constructs a cart service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{
		repo:     params.CartRepo,
		products: params.ProductRepo,
		bus:      params.Bus,
	}, nil
}

func (s *service) View(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	summary := buildSummary(items)
	return &summary, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*Summary, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	if product.Kind == enums.ProductKindLeasable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "leasable products are requested as leases, not cart items")
	}
	if product.Kind == enums.ProductKindPhysical && product.Stock < req.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").
			WithDetails(map[string]any{"available": product.Stock})
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		UnitPrice: product.UnitPrice,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert cart line")
	}
	return s.viewAndPublish(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, productID uuid.UUID, req UpdateItemRequest) (*Summary, error) {
	if err := s.repo.UpdateQuantity(ctx, userID, productID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
	}
	return s.viewAndPublish(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*Summary, error) {
	if err := s.repo.DeleteLine(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart line")
	}
	return s.viewAndPublish(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	s.publishCount(ctx, userID, 0)
	return nil
}

func (s *service) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.CountLines(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count cart lines")
	}
	return count, nil
}

func (s *service) viewAndPublish(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	summary, err := s.View(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.publishCount(ctx, userID, summary.Count)
	return summary, nil
}

func (s *service) publishCount(ctx context.Context, userID uuid.UUID, count int) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.CartCountChanged{UserID: userID, Count: count})
}

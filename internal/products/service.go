package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/pagination"
	"github.com/devmarket-mx/tienda-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the catalog controllers.
type Service interface {
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Summary, error)
	Create(ctx context.Context, req CreateRequest) (*Summary, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Summary, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Summary, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type productRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Product, string, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo productRepository
}

// NewService constructs the catalog service.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*Page, error) {
	products, next, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	summaries := make([]Summary, 0, len(products))
	for i := range products {
		summaries = append(summaries, summarize(&products[i]))
	}
	return &Page{Products: summaries, NextCursor: next}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Summary, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := summarize(product)
	return &summary, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Summary, error) {
	kind, err := enums.ParseProductKind(req.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product kind")
	}
	price, err := types.ParseAmount(req.UnitPrice)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit price")
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Category:    strings.TrimSpace(req.Category),
		Kind:        kind,
		Description: req.Description,
		UnitPrice:   price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		ProviderID:  req.ProviderID,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	summary := summarize(product)
	return &summary, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Summary, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		updates["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Category != nil {
		updates["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		updates["description"] = req.Description
	}
	if req.UnitPrice != nil {
		price, err := types.ParseAmount(*req.UnitPrice)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit price")
		}
		updates["unit_price"] = price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.ImageURL != nil {
		updates["image_url"] = req.ImageURL
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.ProviderID != nil {
		updates["provider_id"] = req.ProviderID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, notFoundOrInternal(err, "update product")
		}
	}
	return s.Get(ctx, id)
}

func (s *service) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*Summary, error) {
	if delta == 0 {
		return s.Get(ctx, id)
	}
	if err := s.repo.AdjustStock(ctx, id, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// either the product is unknown or the delta would go negative
			if _, findErr := s.repo.FindByID(ctx, id); findErr == nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot go negative")
			}
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adjust stock")
	}
	return s.Get(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return notFoundOrInternal(err, "deactivate product")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "load product")
	}
	return product, nil
}

func notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}

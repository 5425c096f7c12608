package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/db"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateRequest carries the admin payload for a new supplier.
type CreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	ContactName string  `json:"contact_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone,omitempty"`
	TaxID       *string `json:"tax_id,omitempty"`
	City        *string `json:"city,omitempty"`
}

// UpdateRequest carries the mutable supplier fields.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	ContactName *string `json:"contact_name,omitempty" validate:"omitempty,min=1"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty"`
	TaxID       *string `json:"tax_id,omitempty"`
	City        *string `json:"city,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Summary is the public shape of a supplier.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	TaxID        *string   `json:"tax_id,omitempty"`
	City         *string   `json:"city,omitempty"`
	IsActive     bool      `json:"is_active"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Service defines the behavior needed by the provider controllers.
type Service interface {
	List(ctx context.Context, onlyActive bool) ([]Summary, error)
	Get(ctx context.Context, id uuid.UUID) (*Summary, error)
	Create(ctx context.Context, req CreateRequest) (*Summary, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Summary, error)
}

type providerRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Provider, error)
	List(ctx context.Context, onlyActive bool) ([]models.Provider, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	repo providerRepository
}

// NewService constructs the providers service.
func NewService(repo providerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("provider repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, onlyActive bool) ([]Summary, error) {
	providers, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list providers")
	}
	summaries := make([]Summary, 0, len(providers))
	for i := range providers {
		summaries = append(summaries, summarize(&providers[i], 0))
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Summary, error) {
	provider, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "provider not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load provider")
	}
	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count provider products")
	}
	summary := summarize(provider, count)
	return &summary, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Summary, error) {
	provider := &models.Provider{
		Name:        strings.TrimSpace(req.Name),
		ContactName: strings.TrimSpace(req.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		TaxID:       req.TaxID,
		City:        req.City,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, provider); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "provider name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create provider")
	}
	summary := summarize(provider, 0)
	return &summary, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Summary, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.ContactName != nil {
		updates["contact_name"] = strings.TrimSpace(*req.ContactName)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		updates["phone"] = req.Phone
	}
	if req.TaxID != nil {
		updates["tax_id"] = req.TaxID
	}
	if req.City != nil {
		updates["city"] = req.City
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "provider not found")
			}
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "provider name already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update provider")
		}
	}
	return s.Get(ctx, id)
}

func summarize(p *models.Provider, productCount int64) Summary {
	return Summary{
		ID:           p.ID,
		Name:         p.Name,
		ContactName:  p.ContactName,
		Email:        p.Email,
		Phone:        p.Phone,
		TaxID:        p.TaxID,
		City:         p.City,
		IsActive:     p.IsActive,
		ProductCount: productCount,
		CreatedAt:    p.CreatedAt,
	}
}

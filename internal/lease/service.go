package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devmarket-mx/tienda-backend/internal/pricing"
	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the lease controllers.
type Service interface {
	Request(ctx context.Context, userID uuid.UUID, req RequestLease) (*Summary, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]Summary, error)
	ListAll(ctx context.Context, status *enums.LeaseStatus) ([]Summary, error)
	Activate(ctx context.Context, leaseID uuid.UUID) (*Summary, error)
	Cancel(ctx context.Context, leaseID uuid.UUID) (*Summary, error)
}

type leaseRepository interface {
	Create(ctx context.Context, lease *models.Lease) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Lease, error)
	ListAll(ctx context.Context, status *enums.LeaseStatus) ([]models.Lease, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LeaseStatus) error
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     leaseRepository
	products productFinder
	taxRate  decimal.Decimal
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build a lease service.
type ServiceParams struct {
	LeaseRepo   leaseRepository
	ProductRepo productFinder
	TaxRate     decimal.Decimal
	Now         func() time.Time
}

// NewService constructs a lease service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.LeaseRepo == nil {
		return nil, fmt.Errorf("lease repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.LeaseRepo,
		products: params.ProductRepo,
		taxRate:  params.TaxRate,
		now:      now,
	}, nil
}

func (s *service) Request(ctx context.Context, userID uuid.UUID, req RequestLease) (*Summary, error) {
	unit, err := enums.ParseLeasePeriodUnit(req.PeriodUnit)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid period unit")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date must be YYYY-MM-DD")
	}
	term, ok := NewTerm(start, unit, req.PeriodCount)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid lease term")
	}

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
	if product.Kind != enums.ProductKindLeasable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product cannot be leased")
	}

	price := PriceFor(product.UnitPrice, term.Count)
	totals := pricing.Compute(price, decimal.Zero, s.taxRate)

	lease := &models.Lease{
		UserID:      userID,
		ProductID:   product.ID,
		PeriodUnit:  term.Unit,
		PeriodCount: term.Count,
		StartDate:   term.StartDate,
		EndDate:     term.EndDate,
		Status:      enums.LeaseStatusRequested,
		Price:       totals.Subtotal,
		Tax:         totals.Tax,
		Total:       totals.Total,
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, lease); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create lease")
	}
	lease.Product = product
	summary := summarize(lease)
	return &summary, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]Summary, error) {
	leases, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leases")
	}
	return summarizeAll(leases), nil
}

func (s *service) ListAll(ctx context.Context, status *enums.LeaseStatus) ([]Summary, error) {
	leases, err := s.repo.ListAll(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leases")
	}
	return summarizeAll(leases), nil
}

// Activate moves a requested lease to active. Only requested leases can be
// activated; anything else is a state conflict.
func (s *service) Activate(ctx context.Context, leaseID uuid.UUID) (*Summary, error) {
	return s.transition(ctx, leaseID, enums.LeaseStatusActive, enums.LeaseStatusRequested)
}

// Cancel moves a requested or active lease to canceled.
func (s *service) Cancel(ctx context.Context, leaseID uuid.UUID) (*Summary, error) {
	return s.transition(ctx, leaseID, enums.LeaseStatusCanceled, enums.LeaseStatusRequested, enums.LeaseStatusActive)
}

func (s *service) transition(ctx context.Context, leaseID uuid.UUID, target enums.LeaseStatus, allowedFrom ...enums.LeaseStatus) (*Summary, error) {
	lease, err := s.repo.FindByID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lease not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load lease")
	}

	allowed := false
	for _, from := range allowedFrom {
		if lease.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("lease is %s", lease.Status)).
			WithDetails(map[string]any{"status": lease.Status, "target": target})
	}

	if err := s.repo.UpdateStatus(ctx, leaseID, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update lease status")
	}
	lease.Status = target
	summary := summarize(lease)
	return &summary, nil
}

func summarizeAll(leases []models.Lease) []Summary {
	out := make([]Summary, 0, len(leases))
	for i := range leases {
		out = append(out, summarize(&leases[i]))
	}
	return out
}

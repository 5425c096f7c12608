package lease

import (
	"context"
	"testing"
	"time"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLeaseRepo struct {
	rows map[uuid.UUID]*models.Lease
}

func newFakeLeaseRepo() *fakeLeaseRepo {
	return &fakeLeaseRepo{rows: map[uuid.UUID]*models.Lease{}}
}

func (f *fakeLeaseRepo) Create(_ context.Context, lease *models.Lease) error {
	lease.ID = uuid.New()
	copy := *lease
	f.rows[lease.ID] = &copy
	return nil
}

func (f *fakeLeaseRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Lease, error) {
	var out []models.Lease
	for _, lease := range f.rows {
		if lease.UserID == userID {
			out = append(out, *lease)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) ListAll(_ context.Context, status *enums.LeaseStatus) ([]models.Lease, error) {
	var out []models.Lease
	for _, lease := range f.rows {
		if status == nil || lease.Status == *status {
			out = append(out, *lease)
		}
	}
	return out, nil
}

func (f *fakeLeaseRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Lease, error) {
	if lease, ok := f.rows[id]; ok {
		copy := *lease
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaseRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.LeaseStatus) error {
	lease, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lease.Status = status
	return nil
}

type fakeLeaseProducts struct {
	products map[uuid.UUID]*models.Product
}

func (f *fakeLeaseProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func leasableProduct(price string) *models.Product {
	return &models.Product{
		ID:        uuid.New(),
		Name:      "Licencia CAD",
		Kind:      enums.ProductKindLeasable,
		UnitPrice: decimal.RequireFromString(price),
		IsActive:  true,
	}
}

func newLeaseService(t *testing.T, repo *fakeLeaseRepo, products *fakeLeaseProducts) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		LeaseRepo:   repo,
		ProductRepo: products,
		TaxRate:     decimal.RequireFromString("0.19"),
	})
	require.NoError(t, err)
	return svc
}

func TestRequestDerivesTermAndTotals(t *testing.T) {
	product := leasableProduct("1000.00")
	repo := newFakeLeaseRepo()
	svc := newLeaseService(t, repo, &fakeLeaseProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	summary, err := svc.Request(context.Background(), uuid.New(), RequestLease{
		ProductID:   product.ID,
		PeriodUnit:  "monthly",
		PeriodCount: 3,
		StartDate:   "2026-03-01",
	})
	require.NoError(t, err)
	require.Equal(t, enums.LeaseStatusRequested, summary.Status)
	require.Equal(t, "2026-03-01", summary.StartDate)
	// 3 × 30 days
	require.Equal(t, "2026-05-30", summary.EndDate)
	require.Equal(t, "3000.00", summary.Price)
	require.Equal(t, "570.00", summary.Tax)
	require.Equal(t, "3570.00", summary.Total)
	require.Len(t, repo.rows, 1)
}

func TestRequestRejectsZeroCount(t *testing.T) {
	product := leasableProduct("1000.00")
	svc := newLeaseService(t, newFakeLeaseRepo(), &fakeLeaseProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, err := svc.Request(context.Background(), uuid.New(), RequestLease{
		ProductID:   product.ID,
		PeriodUnit:  "daily",
		PeriodCount: 0,
		StartDate:   "2026-03-01",
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRequestRejectsNonLeasableProduct(t *testing.T) {
	product := leasableProduct("1000.00")
	product.Kind = enums.ProductKindPhysical
	svc := newLeaseService(t, newFakeLeaseRepo(), &fakeLeaseProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, err := svc.Request(context.Background(), uuid.New(), RequestLease{
		ProductID:   product.ID,
		PeriodUnit:  "daily",
		PeriodCount: 1,
		StartDate:   "2026-03-01",
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestActivateOnlyFromRequested(t *testing.T) {
	product := leasableProduct("1000.00")
	repo := newFakeLeaseRepo()
	svc := newLeaseService(t, repo, &fakeLeaseProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	summary, err := svc.Request(context.Background(), uuid.New(), RequestLease{
		ProductID:   product.ID,
		PeriodUnit:  "weekly",
		PeriodCount: 2,
		StartDate:   "2026-03-01",
	})
	require.NoError(t, err)

	activated, err := svc.Activate(context.Background(), summary.ID)
	require.NoError(t, err)
	require.Equal(t, enums.LeaseStatusActive, activated.Status)

	_, err = svc.Activate(context.Background(), summary.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestCancelActiveLease(t *testing.T) {
	product := leasableProduct("1000.00")
	repo := newFakeLeaseRepo()
	svc := newLeaseService(t, repo, &fakeLeaseProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	summary, err := svc.Request(context.Background(), uuid.New(), RequestLease{
		ProductID:   product.ID,
		PeriodUnit:  "daily",
		PeriodCount: 5,
		StartDate:   "2026-03-01",
	})
	require.NoError(t, err)

	_, err = svc.Activate(context.Background(), summary.ID)
	require.NoError(t, err)
	canceled, err := svc.Cancel(context.Background(), summary.ID)
	require.NoError(t, err)
	require.Equal(t, enums.LeaseStatusCanceled, canceled.Status)

	_, err = svc.Cancel(context.Background(), summary.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

type fakeExpiringRepo struct {
	expired int64
	err     error
	lastNow time.Time
}

func (f *fakeExpiringRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	f.lastNow = now
	return f.expired, f.err
}

func TestExpirerSweep(t *testing.T) {
	repo := &fakeExpiringRepo{expired: 2}
	expirer := NewExpirer(repo, nil, nil, time.Minute)

	expired, err := expirer.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), expired)
	require.False(t, repo.lastNow.IsZero())
}

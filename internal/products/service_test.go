package products

import (
	"context"
	"testing"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	rows map[uuid.UUID]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{rows: map[uuid.UUID]*models.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	product.ID = uuid.New()
	copy := *product
	f.rows[product.ID] = &copy
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.rows[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) List(_ context.Context, filter ListFilter, _ pagination.Params) ([]models.Product, string, error) {
	var out []models.Product
	for _, p := range f.rows {
		if filter.OnlyActive && !p.IsActive {
			continue
		}
		if filter.Kind != nil && p.Kind != *filter.Kind {
			continue
		}
		out = append(out, *p)
	}
	return out, "", nil
}

func (f *fakeProductRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	p, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		p.Name = name
	}
	if active, ok := updates["is_active"].(bool); ok {
		p.IsActive = active
	}
	return nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := f.rows[id]
	if !ok || p.Stock+delta < 0 {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (f *fakeProductRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return f.Update(ctx, id, map[string]any{"is_active": false})
}

func newProductService(t *testing.T, repo *fakeProductRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc
}

func TestCreateParsesPriceAndKind(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newProductService(t, repo)

	summary, err := svc.Create(context.Background(), CreateRequest{
		Name:      "Licencia CAD Pro",
		Brand:     "Draftio",
		Category:  "software",
		Kind:      "leasable",
		UnitPrice: "1225.50",
	})
	require.NoError(t, err)
	require.Equal(t, enums.ProductKindLeasable, summary.Kind)
	require.Equal(t, "1225.50", summary.UnitPrice)
	require.True(t, summary.IsActive)
}

func TestCreateRejectsBadPrice(t *testing.T) {
	svc := newProductService(t, newFakeProductRepo())

	_, err := svc.Create(context.Background(), CreateRequest{
		Name: "X", Brand: "Y", Category: "z", Kind: "physical", UnitPrice: "abc",
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateRejectsBadKind(t *testing.T) {
	svc := newProductService(t, newFakeProductRepo())

	_, err := svc.Create(context.Background(), CreateRequest{
		Name: "X", Brand: "Y", Category: "z", Kind: "rental", UnitPrice: "10.00",
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAdjustStockRefusesNegative(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newProductService(t, repo)

	created, err := svc.Create(context.Background(), CreateRequest{
		Name: "Teclado", Brand: "Tec", Category: "hw", Kind: "physical",
		UnitPrice: "100.00", Stock: 3,
	})
	require.NoError(t, err)

	summary, err := svc.AdjustStock(context.Background(), created.ID, -2)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Stock)

	_, err = svc.AdjustStock(context.Background(), created.ID, -5)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeactivateMissingProduct(t *testing.T) {
	svc := newProductService(t, newFakeProductRepo())

	err := svc.Deactivate(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListFiltersActive(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newProductService(t, repo)

	created, err := svc.Create(context.Background(), CreateRequest{
		Name: "A", Brand: "B", Category: "c", Kind: "physical", UnitPrice: "1.00",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateRequest{
		Name: "B", Brand: "B", Category: "c", Kind: "physical", UnitPrice: "2.00",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	page, err := svc.List(context.Background(), ListFilter{OnlyActive: true}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, "B", page.Products[0].Name)
}

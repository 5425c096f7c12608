package providers

import (
	"context"
	"fmt"
	"testing"

	"github.com/devmarket-mx/tienda-backend/pkg/db/models"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProviderRepo struct {
	rows   map[uuid.UUID]*models.Provider
	counts map[uuid.UUID]int64
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{
		rows:   map[uuid.UUID]*models.Provider{},
		counts: map[uuid.UUID]int64{},
	}
}

func (f *fakeProviderRepo) Create(_ context.Context, provider *models.Provider) error {
	for _, existing := range f.rows {
		if existing.Name == provider.Name {
			return fmt.Errorf(`duplicate key value violates unique constraint "idx_providers_name"`)
		}
	}
	provider.ID = uuid.New()
	copy := *provider
	f.rows[provider.ID] = &copy
	return nil
}

func (f *fakeProviderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Provider, error) {
	if p, ok := f.rows[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProviderRepo) List(_ context.Context, onlyActive bool) ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range f.rows {
		if onlyActive && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProviderRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
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

func (f *fakeProviderRepo) CountProducts(_ context.Context, id uuid.UUID) (int64, error) {
	return f.counts[id], nil
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc, err := NewService(newFakeProviderRepo())
	require.NoError(t, err)

	summary, err := svc.Create(context.Background(), CreateRequest{
		Name:        "Acme Supply",
		ContactName: "Rosa",
		Email:       " Rosa@Acme.MX ",
	})
	require.NoError(t, err)
	require.Equal(t, "rosa@acme.mx", summary.Email)
	require.True(t, summary.IsActive)
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc, err := NewService(newFakeProviderRepo())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{
		Name: "Acme Supply", ContactName: "Rosa", Email: "rosa@acme.mx",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{
		Name: "Acme Supply", ContactName: "Luis", Email: "luis@acme.mx",
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestGetIncludesProductCount(t *testing.T) {
	repo := newFakeProviderRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateRequest{
		Name: "Acme Supply", ContactName: "Rosa", Email: "rosa@acme.mx",
	})
	require.NoError(t, err)
	repo.counts[created.ID] = 7

	summary, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(7), summary.ProductCount)
}

func TestUpdateMissingProvider(t *testing.T) {
	svc, err := NewService(newFakeProviderRepo())
	require.NoError(t, err)

	active := false
	_, err = svc.Update(context.Background(), uuid.New(), UpdateRequest{IsActive: &active})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

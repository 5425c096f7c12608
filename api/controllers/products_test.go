package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	productsvc "github.com/devmarket-mx/tienda-backend/internal/products"
	"github.com/devmarket-mx/tienda-backend/pkg/enums"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/devmarket-mx/tienda-backend/pkg/pagination"
	"github.com/google/uuid"
)

type stubProductService struct {
	page       *productsvc.Page
	product    *productsvc.Summary
	err        error
	lastFilter productsvc.ListFilter
	lastParams pagination.Params
}

func (s *stubProductService) List(_ context.Context, filter productsvc.ListFilter, params pagination.Params) (*productsvc.Page, error) {
	s.lastFilter = filter
	s.lastParams = params
	return s.page, s.err
}

func (s *stubProductService) Get(context.Context, uuid.UUID) (*productsvc.Summary, error) {
	return s.product, s.err
}

func (s *stubProductService) Create(_ context.Context, _ productsvc.CreateRequest) (*productsvc.Summary, error) {
	return s.product, s.err
}

func (s *stubProductService) Update(_ context.Context, _ uuid.UUID, _ productsvc.UpdateRequest) (*productsvc.Summary, error) {
	return s.product, s.err
}

func (s *stubProductService) AdjustStock(context.Context, uuid.UUID, int) (*productsvc.Summary, error) {
	return s.product, s.err
}

func (s *stubProductService) Deactivate(context.Context, uuid.UUID) error {
	return s.err
}

func TestProductListParsesFilters(t *testing.T) {
	svc := &stubProductService{page: &productsvc.Page{}}
	handler := ProductList(svc, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/productos?category=licencias&kind=leasable&q=crm&limit=10", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastFilter.Category != "licencias" {
		t.Fatalf("unexpected category filter: %s", svc.lastFilter.Category)
	}
	if svc.lastFilter.Kind == nil || *svc.lastFilter.Kind != enums.ProductKindLeasable {
		t.Fatalf("expected leasable kind filter, got %v", svc.lastFilter.Kind)
	}
	if !svc.lastFilter.OnlyActive {
		t.Fatal("expected only-active filter")
	}
	if svc.lastParams.Limit != 10 {
		t.Fatalf("unexpected limit: %d", svc.lastParams.Limit)
	}
}

func TestProductListRejectsUnknownKind(t *testing.T) {
	handler := ProductList(&stubProductService{}, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/productos?kind=rental", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminProductCreateSuccess(t *testing.T) {
	created := &productsvc.Summary{ID: uuid.New(), Name: "CRM Pro"}
	handler := AdminProductCreate(&stubProductService{product: created}, nil)

	body := `{"name":"CRM Pro","brand":"DevMarket","category":"licencias","kind":"leasable","unit_price":"999.00","stock":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/productos", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data productsvc.Summary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != created.ID {
		t.Fatalf("unexpected product id: %s", envelope.Data.ID)
	}
}

func TestProductGetNotFound(t *testing.T) {
	handler := ProductGet(&stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/productos/"+uuid.NewString(), nil)
	req = withChiParam(req, "productId", uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

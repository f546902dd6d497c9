package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/catalog-api/internal/api/middleware"
	"github.com/storefront/catalog-api/internal/core/domain"
)

type stubProductService struct {
	products   map[string]*domain.Product
	lastFilter domain.ProductFilter
	lastPatch  domain.ProductPatch
	lastInput  domain.ProductInput
}

func newStubProductService() *stubProductService {
	return &stubProductService{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Lamp", Price: 10, Category: "home"},
	}}
}

func (s *stubProductService) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	s.lastInput = in
	p := &domain.Product{ID: "p2", Name: in.Name, Price: in.Price, Category: in.Category, Quantity: in.Quantity}
	s.products[p.ID] = p
	return p, nil
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *stubProductService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	s.lastFilter = filter
	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProductService) Replace(ctx context.Context, id string, in domain.ProductInput) error {
	if _, ok := s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	s.lastInput = in
	return nil
}

func (s *stubProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) error {
	if _, ok := s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	s.lastPatch = patch
	return nil
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestProductHandler_Create(t *testing.T) {
	svc := newStubProductService()
	h := NewProductHandler(svc, zerolog.Nop())

	c, rec := newValidatedContext(http.MethodPost, "/api/products",
		domain.ProductInput{Name: "Desk", Price: 0, Category: "office"})
	c.Set(middleware.IdentityKey, domain.Identity{ID: "admin-1", Role: domain.RoleAdmin})

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string          `json:"message"`
		Product *domain.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "product created successfully", resp.Message)
	assert.Equal(t, "Desk", resp.Product.Name)
	assert.NotContains(t, rec.Body.String(), "quantity")
}

func TestProductHandler_Get(t *testing.T) {
	h := NewProductHandler(newStubProductService(), zerolog.Nop())

	c, rec := newValidatedContext(http.MethodGet, "/api/products/p1", nil)
	require.NoError(t, h.Get(withID(c, "p1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Lamp"`)

	c, _ = newValidatedContext(http.MethodGet, "/api/products/nope", nil)
	assert.ErrorIs(t, h.Get(withID(c, "nope")), domain.ErrProductNotFound)
}

func TestProductHandler_List(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	cases := []struct {
		name   string
		query  string
		want   domain.ProductFilter
		status int
	}{
		{"no query", "", domain.ProductFilter{Page: 1}, http.StatusOK},
		{"category and paging", "?category=home&page=2&limit=10", domain.ProductFilter{Category: "home", Page: 2, Limit: 10}, http.StatusOK},
		{"limit too large", "?limit=500", domain.ProductFilter{}, http.StatusBadRequest},
		{"page not a number", "?page=abc", domain.ProductFilter{}, http.StatusBadRequest},
		{"page too large", "?page=9223372036854775807&limit=100", domain.ProductFilter{}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newStubProductService()
			h := NewProductHandler(svc, zerolog.Nop())
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/products"+tc.query, nil), rec)

			err := h.List(c)
			if tc.status != http.StatusOK {
				he, ok := err.(*echo.HTTPError)
				require.True(t, ok, "expected echo.HTTPError, got %v", err)
				assert.Equal(t, tc.status, he.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, svc.lastFilter)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestProductHandler_Replace(t *testing.T) {
	svc := newStubProductService()
	h := NewProductHandler(svc, zerolog.Nop())

	in := domain.ProductInput{Name: "Lamp XL", Price: 12, Category: "home"}
	c, rec := newValidatedContext(http.MethodPut, "/api/products/p1", in)
	require.NoError(t, h.Replace(withID(c, "p1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, in, svc.lastInput)
	assert.JSONEq(t, `{"message":"product updated successfully"}`, rec.Body.String())

	c, _ = newValidatedContext(http.MethodPut, "/api/products/nope", in)
	assert.ErrorIs(t, h.Replace(withID(c, "nope")), domain.ErrProductNotFound)
}

func TestProductHandler_Update(t *testing.T) {
	svc := newStubProductService()
	h := NewProductHandler(svc, zerolog.Nop())
	price := 0.0

	c, rec := newValidatedContext(http.MethodPatch, "/api/products/p1", domain.ProductPatch{Price: &price})
	require.NoError(t, h.Update(withID(c, "p1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastPatch.Price)
	assert.Equal(t, 0.0, *svc.lastPatch.Price)

	c, _ = newValidatedContext(http.MethodPatch, "/api/products/p1", domain.ProductInput{})
	assert.Equal(t, middleware.ErrInvalidPayload, h.Update(withID(c, "p1")))
}

func TestProductHandler_Delete(t *testing.T) {
	svc := newStubProductService()
	h := NewProductHandler(svc, zerolog.Nop())

	c, rec := newValidatedContext(http.MethodDelete, "/api/products/p1", nil)
	require.NoError(t, h.Delete(withID(c, "p1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"product deleted successfully"}`, rec.Body.String())

	c, _ = newValidatedContext(http.MethodDelete, "/api/products/p1", nil)
	assert.ErrorIs(t, h.Delete(withID(c, "p1")), domain.ErrProductNotFound)
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/command"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/httpx"
)

type memRepo struct {
	products   []domain.Product
	categories []domain.Category
}

func (m *memRepo) Create(_ context.Context, p *domain.Product) error {
	_ = p.BeforeCreate(nil)
	m.products = append(m.products, *p)
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			cp := m.products[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *memRepo) FindAll(context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), m.products...), nil
}

func (m *memRepo) Update(_ context.Context, p *domain.Product) error {
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = *p
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (m *memRepo) Count(context.Context) (int64, error) { return int64(len(m.products)), nil }

func (m *memRepo) Suggest(context.Context, string, int) ([]domain.Product, error) { return nil, nil }

type memCategoryRepo struct{ repo *memRepo }

func (c memCategoryRepo) Create(_ context.Context, cat *domain.Category) error {
	cat.ID = uint(len(c.repo.categories) + 1)
	c.repo.categories = append(c.repo.categories, *cat)
	return nil
}

func (c memCategoryRepo) FindAll(context.Context) ([]domain.Category, error) {
	return c.repo.categories, nil
}

func (c memCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, cat := range c.repo.categories {
		if cat.Name == name {
			return &cat, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

type fixtureEnv struct {
	router *mux.Router
	repo   *memRepo
	tokens *auth.TokenManager
}

func setup(t *testing.T) *fixtureEnv {
	t.Helper()

	repo := &memRepo{
		products: []domain.Product{
			{ID: "robe", Name: "Robe d'été", Category: "Vêtements", Price: decimal.RequireFromString("49.90"),
				StockQuantity: 3, IsFeatured: true, Colors: []string{"Rouge"}, CreatedAt: time.Now()},
			{ID: "sac", Name: "Sac à main", Category: "Accessoires", Price: decimal.RequireFromString("89.00"),
				CreatedAt: time.Now().Add(-time.Hour)},
		},
		categories: []domain.Category{{ID: 1, Name: "Vêtements"}, {ID: 2, Name: "Accessoires"}},
	}
	categories := memCategoryRepo{repo: repo}
	loader := query.NewSnapshotLoader(repo, categories)
	engine := domain.NewEngine(language.French)
	tokens := auth.NewTokenManager("secret", time.Hour)
	reg := prometheus.NewRegistry()

	h := NewCatalogHandler(
		command.NewCreateProductHandler(repo, categories, loader),
		command.NewUpdateProductHandler(repo, categories, loader),
		command.NewDeleteProductHandler(repo, loader),
		command.NewCreateCategoryHandler(categories, loader),
		query.NewBrowseHandler(loader, engine),
		query.NewGetProductHandler(loader),
		query.NewGetHomeHandler(loader, engine),
		query.NewListCategoriesHandler(loader),
		httpx.NewMetrics("catalog_test", reg),
		httpx.NewAuthenticator(tokens),
		reg,
	)

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return &fixtureEnv{router: router, repo: repo, tokens: tokens}
}

func (e *fixtureEnv) do(t *testing.T, method, target, body, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestBrowse(t *testing.T) {
	env := setup(t)

	rec, body := env.do(t, http.MethodGet, "/api/catalog?search=ROBE&in_stock=true&sort=price-asc", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	assert.Equal(t, float64(3), data["active_filters"])
	products := data["products"].([]interface{})
	assert.Equal(t, "robe", products[0].(map[string]interface{})["id"])
}

func TestGetProduct(t *testing.T) {
	env := setup(t)

	rec, body := env.do(t, http.MethodGet, "/api/products/robe", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Robe d'été", data["product"].(map[string]interface{})["name"])

	rec, body = env.do(t, http.MethodGet, "/api/products/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestAdminCreateProduct(t *testing.T) {
	env := setup(t)
	payload := `{"name":"Bague","price":"25.00","category":"Accessoires","stock_quantity":2}`

	userToken, _ := env.tokens.GenerateToken(1, "u@example.com", "user")
	rec, _ := env.do(t, http.MethodPost, "/api/admin/products", payload, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, _ := env.tokens.GenerateToken(2, "a@example.com", httpx.RoleAdmin)
	rec, _ = env.do(t, http.MethodPost, "/api/admin/products", payload, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := env.do(t, http.MethodGet, "/api/catalog?category=Accessoires", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["data"].(map[string]interface{})["total"], "snapshot reloads after a write")

	rec, body = env.do(t, http.MethodPost, "/api/admin/products", `{"name":"","price":"-1"}`, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "name is required")
}

func TestAdminCreateCategoryConflict(t *testing.T) {
	env := setup(t)
	adminToken, _ := env.tokens.GenerateToken(2, "a@example.com", httpx.RoleAdmin)

	rec, _ := env.do(t, http.MethodPost, "/api/admin/categories", `{"name":"Vêtements"}`, adminToken)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestParseFilters(t *testing.T) {
	v := url.Values{}
	v.Set("category", "Bijoux")
	v.Set("min_price", "10.5")
	v.Set("max_price", "abc")
	v.Add("colors", "Or,Argent")
	v.Add("colors", "Rose")
	v.Set("in_stock", "true")
	v.Set("rating", "9")
	v.Set("sort", "cheapest")

	f := ParseFilters(v)
	assert.Equal(t, "Bijoux", f.Category)
	require.NotNil(t, f.MinPrice)
	assert.True(t, f.MinPrice.Equal(decimal.RequireFromString("10.5")))
	assert.Nil(t, f.MaxPrice)
	assert.Equal(t, []string{"Or", "Argent", "Rose"}, f.Colors)
	assert.True(t, f.InStock)
	assert.False(t, f.OnSale)
	assert.Equal(t, 5, f.Rating)
	assert.Equal(t, domain.SortNewest, f.Sort)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/cart"
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/storage"
)

type fakeFinder map[string]catalogdomain.Product

func (f fakeFinder) FindProduct(_ context.Context, id string) (*catalogdomain.Product, error) {
	if id == "boom" {
		return nil, errors.New("db down")
	}
	p, ok := f[id]
	if !ok {
		return nil, catalogdomain.ErrProductNotFound
	}
	return &p, nil
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	finder := fakeFinder{
		"robe": {ID: "robe", Name: "Robe d'été", Category: "Vêtements", Price: decimal.RequireFromString("30.00"),
			Colors: []string{"Rouge", "Bleu"}, Sizes: []string{"S", "M"}},
		"sac": {ID: "sac", Name: "Sac à main", Price: decimal.RequireFromString("12.50")},
	}
	reg := prometheus.NewRegistry()
	h := NewCartHandler(
		cart.NewSessions(storage.NewMemoryStore(), 100, cart.NewMetrics(reg)),
		finder,
		httpx.NewMetrics("cart_test", reg),
	)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return httpx.SessionMiddleware(router)
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(httpx.SessionHeader, "session-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, _ := envelope["data"].(map[string]interface{})
	if data == nil {
		data = envelope
	}
	return rec.Code, data
}

func TestCartFlow(t *testing.T) {
	h := newRouter(t)

	code, state := do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"robe","color":"Rouge","size":"M"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), state["item_count"])

	do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"robe","color":"Rouge","size":"M"}`)
	_, state = do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"sac"}`)
	assert.Equal(t, float64(3), state["item_count"])
	assert.Equal(t, "72.5", state["total"])
	assert.Len(t, state["items"], 2)

	_, state = do(t, h, http.MethodPatch, "/api/cart/items/robe", `{"quantity":5}`)
	assert.Equal(t, float64(6), state["item_count"])

	_, state = do(t, h, http.MethodPatch, "/api/cart/items/robe", `{"quantity":0}`)
	assert.Equal(t, float64(1), state["item_count"])

	_, state = do(t, h, http.MethodDelete, "/api/cart/items/sac", "")
	assert.Equal(t, float64(0), state["item_count"])
	assert.Equal(t, []interface{}{}, state["items"])
}

func TestAddItem_Validation(t *testing.T) {
	h := newRouter(t)

	code, _ := do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"nope"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"robe","color":"Vert"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"robe","size":"XXL"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/api/cart/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"boom"}`)
	assert.Equal(t, http.StatusBadGateway, code)

	code, _ = do(t, h, http.MethodPatch, "/api/cart/items/robe", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRemoveItem_Variant(t *testing.T) {
	h := newRouter(t)

	do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"robe","color":"Rouge"}`)
	do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"robe","color":"Bleu"}`)

	_, state := do(t, h, http.MethodDelete, "/api/cart/items/robe?color=Bleu", "")
	items := state["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Rouge", items[0].(map[string]interface{})["selected_color"])
}

func TestClearCart(t *testing.T) {
	h := newRouter(t)

	do(t, h, http.MethodPost, "/api/cart/items", `{"product_id":"sac"}`)
	code, state := do(t, h, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), state["item_count"])
	assert.Equal(t, "0", state["total"])

	_, state = do(t, h, http.MethodGet, "/api/cart", "")
	assert.Equal(t, float64(0), state["item_count"])
}

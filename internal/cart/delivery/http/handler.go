package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/cart"
	"github.com/tair/storefront/internal/cart/domain"
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

// ProductFinder resolves the catalog product added to a cart
type ProductFinder interface {
	FindProduct(ctx context.Context, id string) (*catalogdomain.Product, error)
}

// CartHandler handles HTTP requests for the session cart
type CartHandler struct {
	sessions *cart.Sessions
	products ProductFinder
	metrics  *httpx.Metrics
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *cart.Sessions, products ProductFinder, metrics *httpx.Metrics) *CartHandler {
	return &CartHandler{sessions: sessions, products: products, metrics: metrics}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/cart", h.metrics.Wrap("/api/cart", h.GetCart)).Methods("GET")
	router.HandleFunc("/api/cart", h.metrics.Wrap("/api/cart", h.ClearCart)).Methods("DELETE")
	router.HandleFunc("/api/cart/items", h.metrics.Wrap("/api/cart/items", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/cart/items/{id}", h.metrics.Wrap("/api/cart/items/{id}", h.UpdateQuantity)).Methods("PATCH")
	router.HandleFunc("/api/cart/items/{id}", h.metrics.Wrap("/api/cart/items/{id}", h.RemoveItem)).Methods("DELETE")
}

func (h *CartHandler) store(r *http.Request) *cart.Store {
	return h.sessions.Get(httpx.SessionFromContext(r.Context()))
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httpx.RespondOK(w, http.StatusOK, "", h.store(r).Sync(r.Context()))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	req.Color = strings.TrimSpace(req.Color)
	req.Size = strings.TrimSpace(req.Size)
	if req.ProductID == "" {
		httpx.RespondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	product, err := h.products.FindProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		logger.Error(r.Context()).Err(err).Str("product_id", req.ProductID).Msg("Failed to resolve product for cart")
		httpx.RespondError(w, http.StatusBadGateway, "Catalog is temporarily unavailable, please try again")
		return
	}
	if req.Color != "" && !product.HasColor(req.Color) {
		httpx.RespondError(w, http.StatusBadRequest, "Color is not available for this product")
		return
	}
	if req.Size != "" && !product.HasSize(req.Size) {
		httpx.RespondError(w, http.StatusBadRequest, "Size is not available for this product")
		return
	}

	state := h.store(r).Dispatch(r.Context(), domain.AddItem{
		Item: domain.Item{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Category:  product.Category,
		},
		Color: req.Color,
		Size:  req.Size,
	})

	logger.Info(r.Context()).
		Str("product_id", product.ID).
		Int("item_count", state.ItemCount).
		Msg("Item added to cart")

	httpx.RespondOK(w, http.StatusOK, "Item added to cart", state)
}

type updateQuantityRequest struct {
	Quantity *int    `json:"quantity"`
	Color    *string `json:"color"`
	Size     *string `json:"size"`
}

// UpdateQuantity handles PATCH /api/cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		httpx.RespondError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	var variant *domain.Variant
	if req.Color != nil || req.Size != nil {
		variant = &domain.Variant{}
		if req.Color != nil {
			variant.Color = *req.Color
		}
		if req.Size != nil {
			variant.Size = *req.Size
		}
	}

	state := h.store(r).Dispatch(r.Context(), domain.UpdateQuantity{
		ProductID: mux.Vars(r)["id"],
		Quantity:  *req.Quantity,
		Variant:   variant,
	})
	httpx.RespondOK(w, http.StatusOK, "", state)
}

// RemoveItem handles DELETE /api/cart/items/{id}. The optional color and
// size query parameters select a specific variant line.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var variant *domain.Variant
	if q.Has("color") || q.Has("size") {
		variant = &domain.Variant{Color: q.Get("color"), Size: q.Get("size")}
	}

	state := h.store(r).Dispatch(r.Context(), domain.RemoveItem{
		ProductID: mux.Vars(r)["id"],
		Variant:   variant,
	})
	httpx.RespondOK(w, http.StatusOK, "", state)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	state := h.store(r).Dispatch(r.Context(), domain.ClearCart{})
	httpx.RespondOK(w, http.StatusOK, "Cart cleared", state)
}

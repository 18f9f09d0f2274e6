package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/checkout"
	orderdomain "github.com/tair/storefront/internal/order/domain"
	"github.com/tair/storefront/pkg/httpx"
)

// CheckoutHandler handles HTTP requests for checkout
type CheckoutHandler struct {
	service *checkout.Service
	metrics *httpx.Metrics
	authn   *httpx.Authenticator
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *checkout.Service, metrics *httpx.Metrics, authn *httpx.Authenticator) *CheckoutHandler {
	return &CheckoutHandler{service: service, metrics: metrics, authn: authn}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/checkout/summary", h.metrics.Wrap("/api/checkout/summary", h.Summary)).Methods("GET")
	// anonymous callers are sent to sign in
	router.HandleFunc("/api/checkout", h.metrics.Wrap("/api/checkout", h.authn.Optional(h.Checkout))).Methods("POST")
}

// Summary handles GET /api/checkout/summary
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	httpx.RespondOK(w, http.StatusOK, "", h.service.Summarize(r.Context(), httpx.SessionFromContext(r.Context())))
}

type checkoutRequest struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	id, _ := httpx.IdentityFromContext(r.Context())
	result, err := h.service.Checkout(r.Context(), checkout.Request{
		SessionID: httpx.SessionFromContext(r.Context()),
		UserID:    id.UserID,
		Email:     id.Email,
		Address: orderdomain.ShippingAddress{
			Email:      req.Email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Address:    req.Address,
			City:       req.City,
			PostalCode: req.PostalCode,
			Country:    req.Country,
		},
	})

	switch {
	case err == nil:
		httpx.RespondOK(w, http.StatusCreated, "Order placed", result)
	case errors.Is(err, checkout.ErrAuthRequired):
		httpx.RespondJSON(w, http.StatusUnauthorized, httpx.Response{
			Success: false,
			Error:   "Sign in to complete your order",
			Data:    map[string]string{"redirect": result.Redirect},
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		httpx.RespondError(w, http.StatusBadRequest, "Your cart is empty")
	case errors.Is(err, orderdomain.ErrInvalidOrder):
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orderdomain.ErrInsufficientStock):
		httpx.RespondError(w, http.StatusConflict, "Some items are no longer in stock")
	default:
		httpx.RespondError(w, http.StatusBadGateway, "We could not place your order, please try again")
	}
}

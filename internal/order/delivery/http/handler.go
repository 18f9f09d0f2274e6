package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/order/domain"
	"github.com/tair/storefront/internal/order/usecase/command"
	"github.com/tair/storefront/internal/order/usecase/query"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

// OrderHandler handles HTTP requests for orders using CQRS pattern
type OrderHandler struct {
	// Command handlers
	updateStatusHandler *command.UpdateStatusHandler

	// Query handlers
	getMyHandler *query.GetMyOrdersHandler
	getHandler   *query.GetOrderHandler
	listHandler  *query.ListOrdersHandler

	metrics *httpx.Metrics
	authn   *httpx.Authenticator
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	updateStatusHandler *command.UpdateStatusHandler,
	getMyHandler *query.GetMyOrdersHandler,
	getHandler *query.GetOrderHandler,
	listHandler *query.ListOrdersHandler,
	metrics *httpx.Metrics,
	authn *httpx.Authenticator,
) *OrderHandler {
	return &OrderHandler{
		updateStatusHandler: updateStatusHandler,
		getMyHandler:        getMyHandler,
		getHandler:          getHandler,
		listHandler:         listHandler,
		metrics:             metrics,
		authn:               authn,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	// User routes
	router.HandleFunc("/api/orders", h.metrics.Wrap("/api/orders", h.authn.Require(h.GetMyOrders))).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.metrics.Wrap("/api/orders/{id}", h.authn.Require(h.GetOrder))).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/admin/orders", h.metrics.Wrap("/api/admin/orders", h.authn.Admin(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/admin/orders/{id}/status", h.metrics.Wrap("/api/admin/orders/{id}/status", h.authn.Admin(h.UpdateStatus))).Methods("PATCH")
}

func page(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

// GetMyOrders handles GET /api/orders
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.IdentityFromContext(r.Context())
	limit, offset := page(r)

	orders, err := h.getMyHandler.Handle(r.Context(), query.GetMyOrdersQuery{
		UserID: id.UserID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respondOrderError(w, r, err, "Failed to get user orders")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", orders)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.IdentityFromContext(r.Context())

	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{
		OrderID: mux.Vars(r)["id"],
		UserID:  id.UserID,
		Admin:   id.Role == httpx.RoleAdmin,
	})
	if err != nil {
		h.respondOrderError(w, r, err, "Failed to get order")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", order)
}

// ListOrders handles GET /api/admin/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)

	orders, err := h.listHandler.Handle(r.Context(), query.ListOrdersQuery{Limit: limit, Offset: offset})
	if err != nil {
		h.respondOrderError(w, r, err, "Failed to list orders")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	orderID := mux.Vars(r)["id"]
	if err := h.updateStatusHandler.Handle(r.Context(), command.UpdateStatusCommand{
		OrderID: orderID,
		Status:  req.Status,
	}); err != nil {
		h.respondOrderError(w, r, err, "Failed to update order status")
		return
	}

	logger.Info(r.Context()).
		Str("order_id", orderID).
		Str("status", req.Status).
		Msg("Order status updated")
	httpx.RespondOK(w, http.StatusOK, "Order status updated", map[string]string{
		"id":     orderID,
		"status": req.Status,
	})
}

func (h *OrderHandler) respondOrderError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		httpx.RespondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidOrder):
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error(r.Context()).Err(err).Msg(msg)
		httpx.RespondError(w, http.StatusInternalServerError, "Orders are temporarily unavailable, please try again")
	}
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/admin/usecase/query"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

// AdminHandler serves the back-office dashboard
type AdminHandler struct {
	dashboardHandler *query.GetDashboardHandler
	metrics          *httpx.Metrics
	authn            *httpx.Authenticator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(dashboardHandler *query.GetDashboardHandler, metrics *httpx.Metrics, authn *httpx.Authenticator) *AdminHandler {
	return &AdminHandler{dashboardHandler: dashboardHandler, metrics: metrics, authn: authn}
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/admin/dashboard", h.metrics.Wrap("/api/admin/dashboard", h.authn.Admin(h.Dashboard))).Methods("GET")
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboardHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build dashboard")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", d)
}

// Dashboard godoc
// @Summary Back-office overview
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,data=object{product_count=int,order_count=int,user_count=int,revenue=string,recent_orders=array}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/admin/dashboard [get]
func (h *AdminHandler) DashboardDoc() {}

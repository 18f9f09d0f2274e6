package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/command"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

// CatalogHandler handles HTTP requests for the catalog using CQRS pattern
type CatalogHandler struct {
	// Command handlers
	createHandler         *command.CreateProductHandler
	updateHandler         *command.UpdateProductHandler
	deleteHandler         *command.DeleteProductHandler
	createCategoryHandler *command.CreateCategoryHandler

	// Query handlers
	browseHandler     *query.BrowseHandler
	getProductHandler *query.GetProductHandler
	homeHandler       *query.GetHomeHandler
	categoriesHandler *query.ListCategoriesHandler

	metrics       *httpx.Metrics
	authn         *httpx.Authenticator
	browseResults prometheus.Histogram
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	createCategoryHandler *command.CreateCategoryHandler,
	browseHandler *query.BrowseHandler,
	getProductHandler *query.GetProductHandler,
	homeHandler *query.GetHomeHandler,
	categoriesHandler *query.ListCategoriesHandler,
	metrics *httpx.Metrics,
	authn *httpx.Authenticator,
	reg prometheus.Registerer,
) *CatalogHandler {
	browseResults := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_catalog_browse_results",
		Help:    "Number of products returned per catalog browse",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
	reg.MustRegister(browseResults)

	return &CatalogHandler{
		createHandler:         createHandler,
		updateHandler:         updateHandler,
		deleteHandler:         deleteHandler,
		createCategoryHandler: createCategoryHandler,
		browseHandler:         browseHandler,
		getProductHandler:     getProductHandler,
		homeHandler:           homeHandler,
		categoriesHandler:     categoriesHandler,
		metrics:               metrics,
		authn:                 authn,
		browseResults:         browseResults,
	}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/catalog", h.metrics.Wrap("/api/catalog", h.Browse)).Methods("GET")
	router.HandleFunc("/api/catalog/home", h.metrics.Wrap("/api/catalog/home", h.Home)).Methods("GET")
	router.HandleFunc("/api/categories", h.metrics.Wrap("/api/categories", h.ListCategories)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metrics.Wrap("/api/products/{id}", h.GetProduct)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/admin/products", h.metrics.Wrap("/api/admin/products", h.authn.Admin(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/admin/products/{id}", h.metrics.Wrap("/api/admin/products/{id}", h.authn.Admin(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/admin/products/{id}", h.metrics.Wrap("/api/admin/products/{id}", h.authn.Admin(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/api/admin/categories", h.metrics.Wrap("/api/admin/categories", h.authn.Admin(h.CreateCategory))).Methods("POST")
}

// Browse handles GET /api/catalog
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	filters := ParseFilters(r.URL.Query())

	result, err := h.browseHandler.Handle(r.Context(), query.BrowseQuery{Filters: filters})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to browse catalog")
		httpx.RespondError(w, http.StatusBadGateway, "Catalog is temporarily unavailable, please try again")
		return
	}
	h.browseResults.Observe(float64(result.Total))

	httpx.RespondOK(w, http.StatusOK, "", result)
}

// Home handles GET /api/catalog/home
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.homeHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build home page")
		httpx.RespondError(w, http.StatusBadGateway, "Catalog is temporarily unavailable, please try again")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", home)
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoriesHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list categories")
		httpx.RespondError(w, http.StatusBadGateway, "Catalog is temporarily unavailable, please try again")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", categories)
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	detail, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		h.respondCatalogError(w, r, err, "Failed to get product")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", detail)
}

type productRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"original_price"`
	ImageURL      string              `json:"image_url"`
	Category      string              `json:"category"`
	StockQuantity int                 `json:"stock_quantity"`
	IsFeatured    bool                `json:"is_featured"`
	Rating        *float64            `json:"rating"`
	ReviewCount   *int                `json:"review_count"`
	Colors        []string            `json:"colors"`
	Sizes         []string            `json:"sizes"`
}

func (req productRequest) fields() command.ProductFields {
	return command.ProductFields{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ImageURL:      req.ImageURL,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		IsFeatured:    req.IsFeatured,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
	}
}

// CreateProduct handles POST /api/admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{ProductFields: req.fields()})
	if err != nil {
		h.respondCatalogError(w, r, err, "Failed to create product")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct handles PUT /api/admin/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:            mux.Vars(r)["id"],
		ProductFields: req.fields(),
	})
	if err != nil {
		h.respondCatalogError(w, r, err, "Failed to update product")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: mux.Vars(r)["id"]})
	if err != nil {
		h.respondCatalogError(w, r, err, "Failed to delete product")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Product deleted successfully", nil)
}

// CreateCategory handles POST /api/admin/categories
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
	}
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	category, err := h.createCategoryHandler.Handle(r.Context(), command.CreateCategoryCommand{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.respondCatalogError(w, r, err, "Failed to create category")
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Category created successfully", category)
}

func (h *CatalogHandler) respondCatalogError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, command.ErrInvalidCategory):
		httpx.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		httpx.RespondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrCategoryExists):
		httpx.RespondError(w, http.StatusConflict, "Category already exists")
	default:
		logger.Error(r.Context()).Err(err).Msg(msg)
		httpx.RespondError(w, http.StatusBadGateway, msg+", please try again")
	}
}

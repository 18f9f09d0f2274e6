// Package storefront assembles the storefront handlers from process-level
// resources. wire.go holds the injector; wire_gen.go is generated from it.
package storefront

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	adminhttp "github.com/tair/storefront/internal/admin/delivery/http"
	adminquery "github.com/tair/storefront/internal/admin/usecase/query"
	"github.com/tair/storefront/internal/cart"
	carthttp "github.com/tair/storefront/internal/cart/delivery/http"
	cataloghttp "github.com/tair/storefront/internal/catalog/delivery/http"
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	catalogrepo "github.com/tair/storefront/internal/catalog/repository"
	catalogquery "github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/internal/checkout"
	checkouthttp "github.com/tair/storefront/internal/checkout/delivery/http"
	"github.com/tair/storefront/internal/config"
	orderhttp "github.com/tair/storefront/internal/order/delivery/http"
	orderdomain "github.com/tair/storefront/internal/order/domain"
	orderrepo "github.com/tair/storefront/internal/order/repository"
	ordercommand "github.com/tair/storefront/internal/order/usecase/command"
	"github.com/tair/storefront/internal/search"
	searchhttp "github.com/tair/storefront/internal/search/delivery/http"
	userhttp "github.com/tair/storefront/internal/user/delivery/http"
	userdomain "github.com/tair/storefront/internal/user/domain"
	userrepo "github.com/tair/storefront/internal/user/repository"
	usercommand "github.com/tair/storefront/internal/user/usecase/command"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/storage"
)

// App holds every HTTP handler plus the shared catalog snapshot
type App struct {
	Catalog  *cataloghttp.CatalogHandler
	Cart     *carthttp.CartHandler
	Search   *searchhttp.SearchHandler
	Checkout *checkouthttp.CheckoutHandler
	Orders   *orderhttp.OrderHandler
	Users    *userhttp.UserHandler
	Admin    *adminhttp.AdminHandler
	Snapshot *catalogquery.SnapshotLoader
}

// RegisterRoutes registers the routes of every handler
func (a *App) RegisterRoutes(router *mux.Router) {
	a.Catalog.RegisterRoutes(router)
	a.Cart.RegisterRoutes(router)
	a.Search.RegisterRoutes(router)
	a.Checkout.RegisterRoutes(router)
	a.Orders.RegisterRoutes(router)
	a.Users.RegisterRoutes(router)
	a.Admin.RegisterRoutes(router)
}

// Migrate creates or updates every table the storefront owns
func Migrate(db *gorm.DB) error {
	if err := catalogrepo.NewGormProductRepository(db).AutoMigrate(); err != nil {
		return err
	}
	if err := userrepo.NewGormUserRepository(db).AutoMigrate(); err != nil {
		return err
	}
	return orderrepo.NewGormOrderRepository(db).AutoMigrate()
}

// Repositories

func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepo.NewTracingProductRepository(catalogrepo.NewGormProductRepository(db))
}

func ProvideCategoryRepository(db *gorm.DB) catalogdomain.CategoryRepository {
	return catalogrepo.NewTracingCategoryRepository(catalogrepo.NewGormCategoryRepository(db))
}

func ProvideOrderRepository(db *gorm.DB) orderdomain.OrderRepository {
	return orderrepo.NewTracingOrderRepository(orderrepo.NewGormOrderRepository(db))
}

func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepo.NewTracingUserRepository(userrepo.NewGormUserRepository(db))
}

// Shared infrastructure

func ProvideEngine(cfg config.Config) *catalogdomain.Engine {
	return catalogdomain.NewEngine(language.Make(cfg.Catalog.Locale))
}

func ProvideTokenManager(cfg config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func ProvideAuthenticator(tokens *auth.TokenManager) *httpx.Authenticator {
	return httpx.NewAuthenticator(tokens)
}

func ProvideHTTPMetrics(cfg config.Config, reg prometheus.Registerer) *httpx.Metrics {
	return httpx.NewMetrics(cfg.Service.Name, reg)
}

// Cart and checkout

func ProvideCartSessions(store storage.Store, cfg config.Config, reg prometheus.Registerer) *cart.Sessions {
	return cart.NewSessions(storage.Namespace(store, "cart"), cfg.Sessions.Capacity, cart.NewMetrics(reg))
}

func ProvideCartHandler(sessions *cart.Sessions, loader *catalogquery.SnapshotLoader, metrics *httpx.Metrics) *carthttp.CartHandler {
	return carthttp.NewCartHandler(sessions, loader, metrics)
}

func ProvideCreateOrderHandler(
	repo orderdomain.OrderRepository,
	publisher ordercommand.EventPublisher,
	loader *catalogquery.SnapshotLoader,
) *ordercommand.CreateOrderHandler {
	return ordercommand.NewCreateOrderHandler(repo, publisher, loader)
}

func ProvideCheckoutService(
	sessions *cart.Sessions,
	orders *ordercommand.CreateOrderHandler,
	cfg config.Config,
	reg prometheus.Registerer,
) *checkout.Service {
	return checkout.NewService(sessions, orders, checkout.Config{
		FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
		ShippingFee:           cfg.Checkout.ShippingFee,
		Currency:              cfg.Checkout.Currency,
	}, reg)
}

// Search

func ProvideSearchConfig(cfg config.Config) search.Config {
	return search.Config{
		Debounce:  cfg.Search.Debounce,
		MinLength: cfg.Search.MinQueryLength,
		Limit:     cfg.Search.SuggestionLimit,
	}
}

func ProvideSearchMetrics(reg prometheus.Registerer) *search.Metrics {
	return search.NewMetrics(reg)
}

func ProvideLookup(repo catalogdomain.ProductRepository) search.Lookup {
	return search.NewProductLookup(repo)
}

func ProvideBars(
	lookup search.Lookup,
	store storage.Store,
	searchCfg search.Config,
	metrics *search.Metrics,
	cfg config.Config,
) *search.Bars {
	return search.NewBars(search.BarFactory{
		Lookup:   lookup,
		Store:    storage.Namespace(store, "search"),
		Config:   searchCfg,
		Cap:      cfg.Search.HistoryCap,
		Trending: cfg.Search.Trending,
		Options:  []search.Option{search.WithMetrics(metrics)},
	}, cfg.Sessions.Capacity)
}

// Users and admin

func ProvideLoginHandler(repo userdomain.UserRepository, tokens *auth.TokenManager) *usercommand.LoginUserHandler {
	return usercommand.NewLoginUserHandler(repo, tokens)
}

func ProvideDashboardHandler(
	products catalogdomain.ProductRepository,
	orders orderdomain.OrderRepository,
	users userdomain.UserRepository,
) *adminquery.GetDashboardHandler {
	return adminquery.NewGetDashboardHandler(products, orders, users)
}

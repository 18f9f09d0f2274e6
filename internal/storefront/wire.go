//go:build wireinject
// +build wireinject

package storefront

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	adminhttp "github.com/tair/storefront/internal/admin/delivery/http"
	carthttp "github.com/tair/storefront/internal/cart/delivery/http"
	cataloghttp "github.com/tair/storefront/internal/catalog/delivery/http"
	catalogcommand "github.com/tair/storefront/internal/catalog/usecase/command"
	catalogquery "github.com/tair/storefront/internal/catalog/usecase/query"
	checkouthttp "github.com/tair/storefront/internal/checkout/delivery/http"
	"github.com/tair/storefront/internal/config"
	orderhttp "github.com/tair/storefront/internal/order/delivery/http"
	ordercommand "github.com/tair/storefront/internal/order/usecase/command"
	orderquery "github.com/tair/storefront/internal/order/usecase/query"
	"github.com/tair/storefront/internal/search"
	searchhttp "github.com/tair/storefront/internal/search/delivery/http"
	userhttp "github.com/tair/storefront/internal/user/delivery/http"
	usercommand "github.com/tair/storefront/internal/user/usecase/command"
	userquery "github.com/tair/storefront/internal/user/usecase/query"
	"github.com/tair/storefront/pkg/storage"
)

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideOrderRepository,
	ProvideUserRepository,
)

var InfraSet = wire.NewSet(
	ProvideEngine,
	ProvideTokenManager,
	ProvideAuthenticator,
	ProvideHTTPMetrics,
	catalogquery.NewSnapshotLoader,
	wire.Bind(new(catalogcommand.Invalidator), new(*catalogquery.SnapshotLoader)),
)

var CatalogSet = wire.NewSet(
	catalogcommand.NewCreateProductHandler,
	catalogcommand.NewUpdateProductHandler,
	catalogcommand.NewDeleteProductHandler,
	catalogcommand.NewCreateCategoryHandler,
	catalogquery.NewBrowseHandler,
	catalogquery.NewGetProductHandler,
	catalogquery.NewGetHomeHandler,
	catalogquery.NewListCategoriesHandler,
	cataloghttp.NewCatalogHandler,
)

var CartSet = wire.NewSet(
	ProvideCartSessions,
	ProvideCartHandler,
	ProvideCreateOrderHandler,
	ProvideCheckoutService,
	checkouthttp.NewCheckoutHandler,
)

var SearchSet = wire.NewSet(
	ProvideSearchConfig,
	ProvideSearchMetrics,
	ProvideLookup,
	ProvideBars,
	search.NewSuggester,
	searchhttp.NewSearchHandler,
)

var OrderSet = wire.NewSet(
	ordercommand.NewUpdateStatusHandler,
	orderquery.NewGetMyOrdersHandler,
	orderquery.NewGetOrderHandler,
	orderquery.NewListOrdersHandler,
	orderhttp.NewOrderHandler,
)

var UserSet = wire.NewSet(
	usercommand.NewRegisterUserHandler,
	ProvideLoginHandler,
	usercommand.NewChangeRoleHandler,
	userquery.NewGetUserHandler,
	userquery.NewListUsersHandler,
	userhttp.NewUserHandler,
	ProvideDashboardHandler,
	adminhttp.NewAdminHandler,
)

// InitializeApp wires every handler. publisher may be nil when Kafka is disabled.
func InitializeApp(
	db *gorm.DB,
	store storage.Store,
	cfg config.Config,
	reg prometheus.Registerer,
	publisher ordercommand.EventPublisher,
) (*App, error) {
	wire.Build(
		RepositorySet,
		InfraSet,
		CatalogSet,
		CartSet,
		SearchSet,
		OrderSet,
		UserSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}

// Package routes maps the public storefront surface onto the gateway
package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/api-gateway/config"
	"github.com/tair/storefront/api-gateway/health"
	"github.com/tair/storefront/api-gateway/middleware"
	"github.com/tair/storefront/api-gateway/proxy"
)

// AuthMode says how the gateway treats the bearer token on a route
type AuthMode string

const (
	AuthPublic   AuthMode = "public"
	AuthOptional AuthMode = "optional"
	AuthRequired AuthMode = "required"
	AuthAdmin    AuthMode = "admin"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix      string   `json:"prefix"`
	Description string   `json:"description"`
	Auth        AuthMode `json:"auth"`
	// Cache is only safe for responses that ignore the session and token
	Cache bool `json:"cache"`
	// Invalidates lists cached prefixes a successful write makes stale
	Invalidates []string `json:"invalidates,omitempty"`
}

var catalogPages = []string{"/api/catalog", "/api/products", "/api/categories"}

// Routes is the storefront surface, most specific prefix first
var Routes = []RouteDefinition{
	{Prefix: "/auth", Description: "Register, login and logout", Auth: AuthPublic},
	{Prefix: "/api/catalog", Description: "Filtered catalog and home page", Auth: AuthPublic, Cache: true},
	{Prefix: "/api/products", Description: "Product details", Auth: AuthPublic, Cache: true},
	{Prefix: "/api/categories", Description: "Category list", Auth: AuthPublic, Cache: true},
	{Prefix: "/api/cart", Description: "Session cart", Auth: AuthOptional},
	{Prefix: "/api/search", Description: "Suggestions, history and trending", Auth: AuthOptional},
	// The storefront answers anonymous checkout with a sign-in redirect payload
	{Prefix: "/api/checkout", Description: "Checkout summary and order placement", Auth: AuthOptional, Invalidates: catalogPages},
	{Prefix: "/api/orders", Description: "Order history", Auth: AuthRequired},
	{Prefix: "/api/profile", Description: "Signed-in profile", Auth: AuthRequired},
	{Prefix: "/api/admin", Description: "Dashboard, catalog, order and user management", Auth: AuthAdmin, Invalidates: catalogPages},
}

// Deps are the shared pieces routes are built from. A nil Redis disables
// caching and rate limiting.
type Deps struct {
	Config  *config.GatewayConfig
	Authn   *middleware.Authenticator
	Breaker *middleware.CircuitBreaker
	Redis   *redis.Client
	Limiter *middleware.RateLimiter
}

// SetupRoutes registers health, status and every proxied prefix
func SetupRoutes(app *fiber.App, deps Deps) {
	reverseProxy := proxy.NewReverseProxy(deps.Config.Upstream)
	checker := health.NewHealthChecker(deps.Config.Upstream)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(checker.QuickCheck())
	})

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		status := checker.CheckAll(ctx)
		code := fiber.StatusOK
		if status.Status == health.StatusUnhealthy {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(status)
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":         "Storefront API Gateway",
			"routes":          Routes,
			"load_balancer":   reverseProxy.Balancer().Stats(),
			"circuit_breaker": deps.Breaker.Stats(),
		})
	})

	cacheConfig := middleware.DefaultCacheConfig(deps.Config.CacheTTL)
	for _, route := range Routes {
		handlers := chain(route, deps, cacheConfig)
		handlers = append(handlers, reverseProxy.Handler())
		app.All(route.Prefix, handlers...)
		app.All(route.Prefix+"/*", handlers...)
	}
}

func chain(route RouteDefinition, deps Deps, cacheConfig middleware.CacheConfig) []fiber.Handler {
	var handlers []fiber.Handler

	switch route.Auth {
	case AuthOptional:
		handlers = append(handlers, deps.Authn.Optional())
	case AuthRequired:
		handlers = append(handlers, deps.Authn.Require())
	case AuthAdmin:
		handlers = append(handlers, deps.Authn.Require(), middleware.AdminOnly())
	}

	if deps.Limiter != nil {
		handlers = append(handlers, deps.Limiter.Middleware())
	}
	if deps.Redis != nil {
		if route.Cache {
			handlers = append(handlers, middleware.CacheMiddleware(deps.Redis, cacheConfig))
		}
		if len(route.Invalidates) > 0 {
			handlers = append(handlers, middleware.InvalidateOnWrite(deps.Redis, route.Invalidates...))
		}
	}

	return append(handlers, middleware.CircuitBreakerMiddleware(deps.Breaker))
}

package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/storefront/pkg/auth"
)

// TokenValidator checks bearer tokens issued by the storefront
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Authenticator rejects bad tokens at the edge before they reach the storefront
type Authenticator struct {
	tokens TokenValidator
}

// NewAuthenticator creates an authenticator
func NewAuthenticator(tokens TokenValidator) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func bearer(c *fiber.Ctx) (string, bool) {
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// forget drops identity headers a client may have sent itself
func forget(c *fiber.Ctx) {
	c.Request().Header.Del("X-User-ID")
	c.Request().Header.Del("X-User-Role")
}

func (a *Authenticator) identify(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals("user_id", claims.UserID)
	c.Locals("email", claims.Email)
	c.Locals("role", claims.Role)

	c.Request().Header.Set("X-User-ID", strconv.FormatUint(uint64(claims.UserID), 10))
	c.Request().Header.Set("X-User-Role", claims.Role)
}

// Require demands a valid token
func (a *Authenticator) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		forget(c)
		if c.Get(fiber.HeaderAuthorization) == "" {
			return unauthorized(c, "Authorization header required")
		}
		token, ok := bearer(c)
		if !ok {
			return unauthorized(c, "Invalid authorization header format")
		}
		claims, err := a.tokens.ValidateToken(token)
		if err != nil {
			return unauthorized(c, "Invalid token")
		}
		a.identify(c, claims)
		return c.Next()
	}
}

// AdminOnly must run after Require
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}

// Optional identifies the caller when a valid token is present. A bad token
// is passed through untouched so the storefront can answer for itself.
func (a *Authenticator) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		forget(c)
		if token, ok := bearer(c); ok {
			if claims, err := a.tokens.ValidateToken(token); err == nil {
				a.identify(c, claims)
			}
		}
		return c.Next()
	}
}

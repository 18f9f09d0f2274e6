package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCacheMiddleware_HitAfterMiss(t *testing.T) {
	_, client := newRedis(t)

	calls := 0
	app := fiber.New()
	app.Get("/api/catalog", CacheMiddleware(client, DefaultCacheConfig(time.Minute)), func(c *fiber.Ctx) error {
		calls++
		return c.JSON(fiber.Map{"count": calls})
	})

	first, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/catalog?category=Robes", nil))
	require.NoError(t, err)
	assert.Equal(t, "MISS", first.Header.Get("X-Cache"))

	second, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/catalog?category=Robes", nil))
	require.NoError(t, err)
	assert.Equal(t, "HIT", second.Header.Get("X-Cache"))

	other, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/catalog?category=Sacs", nil))
	require.NoError(t, err)
	assert.Equal(t, "MISS", other.Header.Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestCacheMiddleware_SkipsErrorsAndWrites(t *testing.T) {
	mr, client := newRedis(t)

	app := fiber.New()
	app.All("/api/catalog", CacheMiddleware(client, DefaultCacheConfig(time.Minute)), func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost {
			return c.SendStatus(fiber.StatusCreated)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/catalog", nil))
	require.NoError(t, err)

	assert.Empty(t, mr.Keys())
}

func TestCacheMiddleware_NilClientPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Get("/", CacheMiddleware(nil, DefaultCacheConfig(time.Minute)), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("X-Cache"))
}

func TestInvalidateOnWrite(t *testing.T) {
	mr, client := newRedis(t)
	require.NoError(t, mr.Set("cache:/api/catalog:aa", "{}"))
	require.NoError(t, mr.Set("cache:/api/categories:bb", "{}"))
	require.NoError(t, mr.Set("ratelimit:1.2.3.4", "x"))

	app := fiber.New()
	app.All("/api/admin/products", InvalidateOnWrite(client, "/api/catalog"), func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPut {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodPut, "/api/admin/products", nil))
	require.NoError(t, err)
	assert.True(t, mr.Exists("cache:/api/catalog:aa"), "failed write keeps cache")

	_, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/admin/products", nil))
	require.NoError(t, err)
	assert.False(t, mr.Exists("cache:/api/catalog:aa"))
	assert.True(t, mr.Exists("cache:/api/categories:bb"))
	assert.True(t, mr.Exists("ratelimit:1.2.3.4"))
}

func TestInvalidateCache_NoMatches(t *testing.T) {
	_, client := newRedis(t)
	assert.NoError(t, InvalidateCache(context.Background(), client, "cache:/nothing*"))
}

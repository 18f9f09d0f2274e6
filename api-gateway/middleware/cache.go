package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/pkg/logger"
)

const cachePrefix = "cache:"

// CacheConfig holds cache configuration
type CacheConfig struct {
	TTL              time.Duration
	CacheableMethods []string
	CacheableStatus  []int
}

// DefaultCacheConfig caches successful catalog reads briefly; stock moves on every order
func DefaultCacheConfig(ttl time.Duration) CacheConfig {
	return CacheConfig{
		TTL:              ttl,
		CacheableMethods: []string{fiber.MethodGet, fiber.MethodHead},
		CacheableStatus:  []int{fiber.StatusOK, fiber.StatusNotFound},
	}
}

// CacheMiddleware serves public responses from Redis. Only mount it on
// routes whose body does not depend on the caller's session or token.
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil || !contains(config.CacheableMethods, c.Method()) {
			return c.Next()
		}

		ctx := c.UserContext()
		key := cacheKey(c)

		if cached, err := redisClient.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
			logger.Debug(ctx).Str("cache_key", key).Msg("Cache hit")
			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		err := c.Next()
		if err != nil || !containsInt(config.CacheableStatus, c.Response().StatusCode()) {
			return err
		}

		body := c.Response().Body()
		if err := redisClient.Set(ctx, key, body, config.TTL).Err(); err != nil {
			logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache response")
		}
		c.Set("X-Cache", "MISS")
		return nil
	}
}

// cacheKey keeps the path readable so invalidation can match on it
func cacheKey(c *fiber.Ctx) string {
	sum := sha256.Sum256([]byte(c.Method() + "?" + string(c.Request().URI().QueryString())))
	return fmt.Sprintf("%s%s:%s", cachePrefix, c.Path(), hex.EncodeToString(sum[:8]))
}

// InvalidateCache deletes every cached entry whose key matches pattern
func InvalidateCache(ctx context.Context, redisClient *redis.Client, pattern string) error {
	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := redisClient.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	logger.Info(ctx).
		Int("count", len(keys)).
		Str("pattern", pattern).
		Msg("Cache invalidated")
	return nil
}

// InvalidateOnWrite drops cached catalog pages after a successful write
// through the route it is mounted on
func InvalidateOnWrite(redisClient *redis.Client, paths ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if redisClient == nil || err != nil || c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead {
			return err
		}
		if status := c.Response().StatusCode(); status < 200 || status >= 300 {
			return nil
		}

		for _, path := range paths {
			if err := InvalidateCache(c.UserContext(), redisClient, cachePrefix+path+"*"); err != nil {
				logger.Warn(c.UserContext()).Err(err).Str("path", path).Msg("Failed to invalidate cache")
			}
		}
		return nil
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, n := range values {
		if n == v {
			return true
		}
	}
	return false
}

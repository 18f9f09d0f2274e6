package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_URLS", "")
	cfg := LoadConfig()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.Upstream.Instances)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("STOREFRONT_URLS", "http://sf-1:8080/, http://sf-2:8080")
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("UPSTREAM_RETRIES", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, []string{"http://sf-1:8080", "http://sf-2:8080"}, cfg.Upstream.Instances)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2, cfg.Upstream.Retries)
}

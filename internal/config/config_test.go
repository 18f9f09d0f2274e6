package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 2, cfg.Search.MinQueryLength)
	assert.Equal(t, 6, cfg.Search.SuggestionLimit)
	assert.Equal(t, 5, cfg.Search.HistoryCap)
	assert.Equal(t, []string{"Robe d'été", "Sneakers", "Sac à main", "Bijoux", "Parfum"}, cfg.Search.Trending)
	assert.True(t, cfg.Checkout.ShippingFee.Equal(decimal.RequireFromString("4.99")))
	assert.True(t, cfg.Checkout.FreeShippingThreshold.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 10000, cfg.Sessions.Capacity)
	assert.Equal(t, "fr", cfg.Catalog.Locale)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
http:
  port: "9000"
storage:
  backend: dynamodb
  dynamodb_table: sessions
search:
  debounce: 150ms
  trending: [Sneakers]
checkout:
  shipping_fee: "6.50"
  free_shipping_threshold: 80
`)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, "dynamodb", cfg.Storage.Backend)
	assert.Equal(t, "sessions", cfg.Storage.DynamoDBTable)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, []string{"Sneakers"}, cfg.Search.Trending)
	assert.Equal(t, 6, cfg.Search.SuggestionLimit)
	assert.True(t, cfg.Checkout.ShippingFee.Equal(decimal.RequireFromString("6.50")))
	assert.True(t, cfg.Checkout.FreeShippingThreshold.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoad_PathFromEnvironment(t *testing.T) {
	path := writeConfig(t, "grpc:\n  port: \"7070\"\n")
	t.Setenv("STOREFRONT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.GRPC.Port)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("dynamodb without table", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "dynamodb")
		t.Setenv("DYNAMODB_TABLE", "")
		_, err := Load(writeConfig(t, "{}"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dynamodb_table")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "etcd")
		_, err := Load(writeConfig(t, "{}"))
		assert.Error(t, err)
	})

	t.Run("bad locale", func(t *testing.T) {
		t.Setenv("CATALOG_LOCALE", "not a locale!")
		_, err := Load(writeConfig(t, "{}"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog.locale")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search: [unclosed"))
		assert.Error(t, err)
	})
}

// Package config loads storefront configuration: built-in defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/tair/storefront/pkg/database"
	"github.com/tair/storefront/pkg/storage"
)

// Config is the full service configuration
type Config struct {
	Service  ServiceConfig   `yaml:"service"`
	HTTP     HTTPConfig      `yaml:"http"`
	GRPC     GRPCConfig      `yaml:"grpc"`
	Database database.Config `yaml:"database"`
	Redis    RedisConfig     `yaml:"redis"`
	Kafka    KafkaConfig     `yaml:"kafka"`
	Storage  storage.Config  `yaml:"storage"`
	Auth     AuthConfig      `yaml:"auth"`
	Sessions SessionConfig   `yaml:"sessions"`
	Catalog  CatalogConfig   `yaml:"catalog"`
	Search   SearchConfig    `yaml:"search"`
	Checkout CheckoutConfig  `yaml:"checkout"`
}

type ServiceConfig struct {
	Name           string  `yaml:"name"`
	Version        string  `yaml:"version"`
	Environment    string  `yaml:"environment"`
	LogLevel       string  `yaml:"log_level"`
	JaegerEndpoint string  `yaml:"jaeger_endpoint"`
	SampleRatio    float64 `yaml:"sample_ratio"`
}

// IsDevelopment reports whether console logging should be used
func (s ServiceConfig) IsDevelopment() bool {
	return s.Environment == "" || s.Environment == "development"
}

type HTTPConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type GRPCConfig struct {
	Port           string        `yaml:"port"`
	HealthInterval time.Duration `yaml:"health_interval"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

// Enabled reports whether any broker is configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// SessionConfig bounds the live per-session carts and search bars kept in memory
type SessionConfig struct {
	Capacity int `yaml:"capacity"`
}

// CatalogConfig controls catalog text matching
type CatalogConfig struct {
	Locale string `yaml:"locale"`
}

type SearchConfig struct {
	Debounce        time.Duration `yaml:"debounce"`
	MinQueryLength  int           `yaml:"min_query_length"`
	SuggestionLimit int           `yaml:"suggestion_limit"`
	HistoryCap      int           `yaml:"history_cap"`
	Trending        []string      `yaml:"trending"`
}

type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal `yaml:"free_shipping_threshold"`
	ShippingFee           decimal.Decimal `yaml:"shipping_fee"`
	Currency              string          `yaml:"currency"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Service: ServiceConfig{
			Name:           "storefront",
			Version:        "1.0.0",
			Environment:    "development",
			LogLevel:       "info",
			JaegerEndpoint: "http://localhost:14268/api/traces",
			SampleRatio:    1,
		},
		HTTP: HTTPConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		GRPC: GRPCConfig{
			Port:           "9090",
			HealthInterval: 10 * time.Second,
		},
		Database: database.Config{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "storefront",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Kafka: KafkaConfig{
			Topic:   "storefront-orders",
			GroupID: "storefront-catalog",
		},
		Storage: storage.Config{
			Backend:   storage.BackendMemory,
			TTL:       30 * 24 * time.Hour,
			KeyPrefix: "storefront",
		},
		Auth: AuthConfig{
			JWTSecret: "change-me",
			TokenTTL:  24 * time.Hour,
		},
		Sessions: SessionConfig{Capacity: 10000},
		Catalog:  CatalogConfig{Locale: "fr"},
		Search: SearchConfig{
			Debounce:        300 * time.Millisecond,
			MinQueryLength:  2,
			SuggestionLimit: 6,
			HistoryCap:      5,
			Trending:        []string{"Robe d'été", "Sneakers", "Sac à main", "Bijoux", "Parfum"},
		},
		Checkout: CheckoutConfig{
			FreeShippingThreshold: decimal.NewFromInt(50),
			ShippingFee:           decimal.RequireFromString("4.99"),
			Currency:              "EUR",
		},
	}
}

// Load builds the configuration. An empty path falls back to STOREFRONT_CONFIG;
// when neither is set only defaults and the environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("STOREFRONT_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Service.Environment = getEnv("ENVIRONMENT", cfg.Service.Environment)
	cfg.Service.LogLevel = getEnv("LOG_LEVEL", cfg.Service.LogLevel)
	cfg.Service.JaegerEndpoint = getEnv("JAEGER_ENDPOINT", cfg.Service.JaegerEndpoint)

	cfg.HTTP.Port = getEnv("HTTP_PORT", cfg.HTTP.Port)
	cfg.GRPC.Port = getEnv("GRPC_PORT", cfg.GRPC.Port)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.Kafka.Brokers = splitList(brokers)
	}
	cfg.Kafka.Topic = getEnv("KAFKA_TOPIC", cfg.Kafka.Topic)

	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.DynamoDBTable = getEnv("DYNAMODB_TABLE", cfg.Storage.DynamoDBTable)
	cfg.Storage.DynamoDBRegion = getEnv("AWS_REGION", cfg.Storage.DynamoDBRegion)
	if cfg.Storage.RedisAddr == "" {
		cfg.Storage.RedisAddr = cfg.Redis.Addr
		cfg.Storage.RedisPassword = cfg.Redis.Password
		cfg.Storage.RedisDB = cfg.Redis.DB
	}

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Catalog.Locale = getEnv("CATALOG_LOCALE", cfg.Catalog.Locale)
}

// Validate rejects configurations the service cannot run with
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case storage.BackendMemory, storage.BackendRedis, storage.BackendDynamoDB:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	if c.Storage.Backend == storage.BackendDynamoDB && c.Storage.DynamoDBTable == "" {
		errs = append(errs, errors.New("storage.dynamodb_table is required for the dynamodb backend"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Sessions.Capacity < 1 {
		errs = append(errs, errors.New("sessions.capacity must be at least 1"))
	}
	if _, err := language.Parse(c.Catalog.Locale); err != nil {
		errs = append(errs, fmt.Errorf("catalog.locale: %w", err))
	}
	if c.Search.MinQueryLength < 1 {
		errs = append(errs, errors.New("search.min_query_length must be at least 1"))
	}
	if c.Search.SuggestionLimit < 1 {
		errs = append(errs, errors.New("search.suggestion_limit must be at least 1"))
	}
	if c.Search.HistoryCap < 1 {
		errs = append(errs, errors.New("search.history_cap must be at least 1"))
	}
	if c.Checkout.ShippingFee.IsNegative() || c.Checkout.FreeShippingThreshold.IsNegative() {
		errs = append(errs, errors.New("checkout amounts must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

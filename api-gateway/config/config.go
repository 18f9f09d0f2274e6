// Package config loads the gateway settings from the environment
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// UpstreamConfig describes the storefront instances behind the gateway
type UpstreamConfig struct {
	Name        string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
	Retries     int
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port           string
	Environment    string
	LogLevel       string
	JaegerEndpoint string
	AllowedOrigins string

	Upstream UpstreamConfig

	RedisAddr     string
	RedisPassword string

	// JWTSecret must match the storefront's so tokens can be checked at the edge
	JWTSecret string

	RateLimit  int
	RateWindow time.Duration
	CacheTTL   time.Duration

	BreakerFailures int
	BreakerCooldown time.Duration
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port:           getEnv("GATEWAY_PORT", "8000"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		Upstream: UpstreamConfig{
			Name:        "storefront",
			Instances:   splitList(getEnv("STOREFRONT_URLS", "http://localhost:8080")),
			Timeout:     getDuration("UPSTREAM_TIMEOUT", 30*time.Second),
			HealthCheck: "/health",
			Retries:     getInt("UPSTREAM_RETRIES", 2),
		},
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		RateLimit:       getInt("RATE_LIMIT", 100),
		RateWindow:      getDuration("RATE_WINDOW", time.Minute),
		CacheTTL:        getDuration("CACHE_TTL", 30*time.Second),
		BreakerFailures: getInt("BREAKER_FAILURES", 5),
		BreakerCooldown: getDuration("BREAKER_COOLDOWN", 30*time.Second),
	}
}

// IsDevelopment reports whether console logging should be used
func (c *GatewayConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}

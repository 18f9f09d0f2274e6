// Package storage provides the durable key/value stores behind per-session
// state such as the cart snapshot and the recent-search history.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key has no value
var ErrNotFound = errors.New("storage: key not found")

// Store is a byte-oriented key/value store. Reads and writes are atomic per key;
// there is no coordination across keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Backend names
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

// Config selects and configures a backend
type Config struct {
	Backend   string        `yaml:"backend"`
	TTL       time.Duration `yaml:"ttl"`
	KeyPrefix string        `yaml:"key_prefix"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	DynamoDBTable  string `yaml:"dynamodb_table"`
	DynamoDBRegion string `yaml:"dynamodb_region"`
}

// Open builds the configured backend. The returned close function releases
// any client connections and is never nil.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), noop, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisStore(client, cfg.KeyPrefix, cfg.TTL), client.Close, nil

	case BackendDynamoDB:
		if cfg.DynamoDBTable == "" {
			return nil, noop, errors.New("storage: dynamodb table is required")
		}
		var opts []func(*config.LoadOptions) error
		if cfg.DynamoDBRegion != "" {
			opts = append(opts, config.WithRegion(cfg.DynamoDBRegion))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load aws config: %w", err)
		}
		return NewDynamoDBStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable, cfg.TTL), noop, nil

	default:
		return nil, noop, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}

// Namespace scopes every key of store under prefix
func Namespace(store Store, prefix string) Store {
	return &namespaced{store: store, prefix: prefix + ":"}
}

type namespaced struct {
	store  Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.store.Delete(ctx, n.prefix+key)
}

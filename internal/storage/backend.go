package storage

import (
	"context"
	"fmt"

	"github.com/iwvelando/dealer-finance/pkg/constants"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config selects and parameterizes the storage back end.
type Config struct {
	Backend     string `yaml:"backend,omitempty"`     // memory, redis, postgres
	RedisAddr   string `yaml:"redisAddr,omitempty"`   // host:port
	RedisDB     int    `yaml:"redisDB,omitempty"`     // logical database
	KeyPrefix   string `yaml:"keyPrefix,omitempty"`   // prefix for redis hash keys
	DatabaseURL string `yaml:"databaseURL,omitempty"` // postgres connection string
}

// Backend holds the open connection, if any, for the configured back end.
type Backend struct {
	kind      string
	keyPrefix string
	redis     *redis.Client
	pool      *pgxpool.Pool
}

// Open connects to the configured back end. An empty backend means memory.
func Open(ctx context.Context, logger *zap.Logger, cfg Config) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	kind := cfg.Backend
	if kind == "" {
		kind = constants.StorageMemory
	}

	b := &Backend{kind: kind, keyPrefix: cfg.KeyPrefix}
	switch kind {
	case constants.StorageMemory:
	case constants.StorageRedis:
		if cfg.RedisAddr == "" {
			cfg.RedisAddr = constants.DefaultRedisAddr
		}
		b.redis = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		if err := b.redis.Ping(ctx).Err(); err != nil {
			_ = b.redis.Close()
			return nil, fmt.Errorf("unable to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
	case constants.StoragePostgres:
		pool, err := ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.pool = pool
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", kind)
	}

	logger.Info("storage backend ready",
		zap.String("op", "storage.Open"),
		zap.String("backend", kind),
	)
	return b, nil
}

// Kind returns the name of the back end.
func (b *Backend) Kind() string {
	return b.kind
}

// Close releases the back end's connections.
func (b *Backend) Close() error {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		return b.redis.Close()
	}
	return nil
}

// NewRepository returns the repository for a collection on the given back end.
func NewRepository[T Entity](b *Backend, collection string) Repository[T] {
	switch b.kind {
	case constants.StorageRedis:
		return NewRedis[T](b.redis, b.keyPrefix, collection)
	case constants.StoragePostgres:
		return NewPostgres[T](b.pool, collection)
	default:
		return NewMemory[T]()
	}
}

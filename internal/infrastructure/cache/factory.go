package cache

import (
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore selects the idempotency store implementation from
// configuration: Redis when a host is configured, otherwise the in-memory
// store. Falls back to in-memory when Redis is unreachable so checkout
// never hard-fails on a cache dependency.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if cfg.Host == "" {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(RedisOptions{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory idempotency store",
			zap.String("host", cfg.Host),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore()
	}

	logger.Info("using redis idempotency store", zap.String("host", cfg.Host))
	return store
}

// Ensure InMemoryIdempotencyStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)

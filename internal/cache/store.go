// Package cache holds the short-lived counters behind rate limiting,
// login lockout and request monitoring.
package cache

import (
	"context"
	"time"

	"hospital-website-backend/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks hospital-website-backend/internal/cache Store

// Store is a key-value store with per-key expiry
type Store interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Incr increments a counter and resets its TTL
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, key string) error
	// SlidingWindow drops hits at or before now-window, then records now
	// unless limit hits remain. count is the number of hits in the window.
	SlidingWindow(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (allowed bool, count int, err error)
}

// New returns a Redis store when REDIS_ADDR is set, otherwise an in-process one
func New(cfg config.RedisConfig, log *logrus.Logger) Store {
	if cfg.Addr == "" {
		log.Info("Using in-memory counter store")
		return NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis unreachable at startup, counters fail open until it recovers")
	} else {
		log.WithField("addr", cfg.Addr).Info("Using Redis counter store")
	}

	return NewRedisStore(client)
}

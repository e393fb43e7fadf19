package cache

// Package cache provides the Redis-backed token cache and exposes connection
// health/pool statistics for the monitoring endpoints.

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"caterapi/internal/auth"
	"caterapi/internal/config"
)

// NewClient creates a Redis client from configuration.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// TokenCache is a Redis-backed implementation of auth.TokenCache.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenCache creates a token cache with the given TTL.
func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{client: client, ttl: ttl}
}

var _ auth.TokenCache = (*TokenCache)(nil)

// Get returns the cached value or auth.ErrCacheMiss when absent.
func (c *TokenCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", auth.ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

// Set stores the value under the configured TTL.
func (c *TokenCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// Health exposes connectivity and pool statistics for monitoring.
type Health struct {
	client *redis.Client
}

// NewHealth wraps a client for health reporting.
func NewHealth(client *redis.Client) *Health {
	return &Health{client: client}
}

// Ping verifies connectivity.
func (h *Health) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

// Pool returns a point-in-time pool snapshot.
func (h *Health) Pool() PoolSnapshot {
	return Snapshot(h.client)
}

// PoolSnapshot is a point-in-time view of the Redis connection pool, surfaced
// on the monitoring health endpoint.
type PoolSnapshot struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

// Snapshot collects pool statistics from the client.
func Snapshot(client *redis.Client) PoolSnapshot {
	st := client.PoolStats()
	return PoolSnapshot{
		Hits:       st.Hits,
		Misses:     st.Misses,
		Timeouts:   st.Timeouts,
		TotalConns: st.TotalConns,
		IdleConns:  st.IdleConns,
		StaleConns: st.StaleConns,
	}
}

// Package cache memoises balance aggregates in redis. Every ledger mutation
// bumps a version counter so stale keys are never read again.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const versionKey = "treasury:balance:version"

// RedisBalanceCache stores balances as JSON under versioned keys.
type RedisBalanceCache struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

var _ portsrepo.BalanceCache = (*RedisBalanceCache)(nil)

// NewRedisBalanceCache wraps an existing client.
func NewRedisBalanceCache(rdb redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisBalanceCache {
	return &RedisBalanceCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Connect dials redis at addr and verifies it with PING. An empty addr
// returns a NoopBalanceCache.
func Connect(ctx context.Context, addr, password string, db int, ttl time.Duration, logger *slog.Logger) (portsrepo.BalanceCache, func() error, error) {
	if addr == "" {
		logger.Warn("REDIS_ADDR not set, balance caching disabled")
		return NoopBalanceCache{}, func() error { return nil }, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	logger.Info("Connected to redis", slog.String("addr", addr))
	return NewRedisBalanceCache(rdb, ttl, logger), rdb.Close, nil
}

func (c *RedisBalanceCache) currentVersion(ctx context.Context) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return v, nil
}

func versionedKey(version int64, key string) string {
	return fmt.Sprintf("treasury:balance:v%d:%s", version, key)
}

func (c *RedisBalanceCache) GetBalance(ctx context.Context, key string) (*domain.Balance, int64, bool) {
	v, err := c.currentVersion(ctx)
	if err != nil {
		c.logger.Warn("Balance cache version lookup failed", slog.String("error", err.Error()))
		return nil, -1, false
	}
	k := versionedKey(v, key)
	raw, err := c.rdb.Get(ctx, k).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Balance cache read failed", slog.String("key", k), slog.String("error", err.Error()))
		}
		return nil, v, false
	}
	var b domain.Balance
	if err := json.Unmarshal(raw, &b); err != nil {
		c.logger.Warn("Discarding unreadable cached balance", slog.String("key", k), slog.String("error", err.Error()))
		return nil, v, false
	}
	return &b, v, true
}

// SetBalance writes under the key of version. After an Invalidate that key is
// never read again, so a stale sum simply expires with the TTL.
func (c *RedisBalanceCache) SetBalance(ctx context.Context, key string, version int64, balance domain.Balance) {
	if version < 0 {
		return
	}
	raw, err := json.Marshal(balance)
	if err != nil {
		return
	}
	k := versionedKey(version, key)
	if err := c.rdb.Set(ctx, k, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Balance cache write failed", slog.String("key", k), slog.String("error", err.Error()))
	}
}

func (c *RedisBalanceCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.Error("Balance cache invalidation failed", slog.String("error", err.Error()))
	}
}

// NoopBalanceCache never stores anything.
type NoopBalanceCache struct{}

var _ portsrepo.BalanceCache = NoopBalanceCache{}

func (NoopBalanceCache) GetBalance(context.Context, string) (*domain.Balance, int64, bool) {
	return nil, 0, false
}

func (NoopBalanceCache) SetBalance(context.Context, string, int64, domain.Balance) {}

func (NoopBalanceCache) Invalidate(context.Context) {}

// MemoryBalanceCache is a process-local cache used with the memory storage driver and in tests.
type MemoryBalanceCache struct {
	mu      sync.Mutex
	version int64
	entries map[string]domain.Balance
}

func NewMemoryBalanceCache() *MemoryBalanceCache {
	return &MemoryBalanceCache{entries: map[string]domain.Balance{}}
}

var _ portsrepo.BalanceCache = (*MemoryBalanceCache)(nil)

func (c *MemoryBalanceCache) GetBalance(_ context.Context, key string) (*domain.Balance, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	if !ok {
		return nil, c.version, false
	}
	return &b, c.version, true
}

// SetBalance drops the write when an Invalidate happened since the lookup.
func (c *MemoryBalanceCache) SetBalance(_ context.Context, key string, version int64, balance domain.Balance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		return
	}
	c.entries[key] = balance
}

func (c *MemoryBalanceCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.entries = map[string]domain.Balance{}
}

// Version reports how many times the cache was invalidated.
func (c *MemoryBalanceCache) Version() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.version)
}

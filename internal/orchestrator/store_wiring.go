package orchestrator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/oneaiguru/wfm-optimization-core/internal/config"
	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore/ratelimit"
	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore/rediscache"
	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore/sqlstore"
)

// BuildStore assembles the MetricsStore chain described by cfg.StorePool
// (spec.md §6): an optional sqlstore-backed durable store, optionally
// fronted by a rediscache read-through cache, with a rate limiter always
// applied last so neither backend sees more concurrent load than it was
// provisioned for. A nil Driver means no durable store is configured; the
// returned Store is nil and every stage falls back to its own fallback
// rule set (spec.md §4.3 Fallback).
//
// The returned close func releases any opened connections; callers should
// defer it (it is a no-op when store is nil).
func BuildStore(cfg *config.Config, logger *zap.Logger) (metricsstore.Store, func() error, error) {
	noop := func() error { return nil }
	if cfg.StorePool.Driver == "" {
		return nil, noop, nil
	}

	sql, err := sqlstore.Open(cfg.StorePool.Driver, cfg.StorePool.DSN)
	if err != nil {
		return nil, noop, fmt.Errorf("orchestrator: open sqlstore: %w", err)
	}

	var store metricsstore.Store = sql
	closeFn := sql.Close

	if cfg.StorePool.RedisAddr != "" {
		cache, err := rediscache.New(rediscache.Options{
			Addr:         cfg.StorePool.RedisAddr,
			PoolSize:     cfg.StorePool.Size,
			MinIdleConns: 1,
			TTL:          cfg.StorePool.RedisTTL,
		}, sql, logger)
		if err != nil {
			_ = sql.Close()
			return nil, noop, fmt.Errorf("orchestrator: new rediscache: %w", err)
		}
		store = cache
		closeFn = func() error {
			cacheErr := cache.Close()
			sqlErr := sql.Close()
			if cacheErr != nil {
				return cacheErr
			}
			return sqlErr
		}
	}

	store = ratelimit.New(store, cfg.StorePool.RateLimitPerSecond, cfg.StorePool.RateLimitBurst)

	return store, closeFn, nil
}

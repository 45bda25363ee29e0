package ratesource

import (
	"context"
	"errors"

	"github.com/lexcase/interest-engine/internal/config"
	"go.uber.org/zap"
)

// FromConfig assembles the provider chain described by cfg: Postgres, then
// the HTML page, then the local file, wrapped in a Redis or in-memory cache.
// It returns a nil provider when no source is configured. The returned close
// function releases any connections and is always safe to call.
func FromConfig(ctx context.Context, cfg config.RatesConfig, logger *zap.Logger) (Provider, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var (
		providers []Provider
		closers   []func() error
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	if cfg.PostgresDSN != "" {
		db, err := OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, db.Close)
		providers = append(providers, NewPostgresProvider(db, cfg.PostgresTable, logger))
	}
	if cfg.URL != "" {
		providers = append(providers, NewHTMLProvider(cfg.URL, nil, logger))
	}
	if cfg.File != "" {
		providers = append(providers, NewFileProvider(cfg.File, logger))
	}
	if len(providers) == 0 {
		return nil, closeAll, nil
	}

	var provider Provider = NewChainProvider(logger, providers...)
	if cfg.RedisAddr != "" {
		cache := NewRedisCache(cfg.RedisAddr)
		closers = append(closers, cache.Close)
		provider = NewCachedProvider(provider, cache, cfg.CacheTTL, logger)
	} else if cfg.CacheTTL > 0 {
		provider = NewCachedProvider(provider, NewMemoryCache(), cfg.CacheTTL, logger)
	}
	return provider, closeAll, nil
}

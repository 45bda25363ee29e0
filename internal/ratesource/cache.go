package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lexcase/interest-engine/internal/rates"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores fetched series between loads.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedProvider serves series from cache and fills it from the wrapped
// provider on a miss. Cache failures never fail a fetch.
type CachedProvider struct {
	inner  Provider
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider wraps inner with cache. A zero ttl keeps entries until evicted.
func NewCachedProvider(inner Provider, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl, logger: logger.Named("cache")}
}

func (p *CachedProvider) Name() string { return "cached(" + p.inner.Name() + ")" }

func (p *CachedProvider) Fetch(ctx context.Context, series rates.Series) ([]RawRecord, error) {
	key := cacheKey(p.inner.Name(), series)

	data, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		var records []RawRecord
		if err := json.Unmarshal(data, &records); err == nil {
			p.logger.Debug("cache hit", zap.String("key", key), zap.Int("rows", len(records)))
			return records, nil
		}
		p.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	case errors.Is(err, ErrCacheMiss):
		p.logger.Debug("cache miss", zap.String("key", key))
	default:
		p.logger.Warn("cache unavailable", zap.String("key", key), zap.Error(err))
	}

	records, err := p.inner.Fetch(ctx, series)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(records); err == nil {
		if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
			p.logger.Warn("failed to store cache entry", zap.String("key", key), zap.Error(err))
		}
	}
	return records, nil
}

func cacheKey(provider string, series rates.Series) string {
	return fmt.Sprintf("interest:rates:%s:%s", provider, series)
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// NewMemoryCache creates an empty cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), e.value...), nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

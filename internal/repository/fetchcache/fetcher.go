// Package fetchcache caches record store fetches in a key-value store.
package fetchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/clinicdex/internal/db"
	"github.com/kailas-cloud/clinicdex/internal/domain"
	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
)

const (
	defaultTTL          = 60 * time.Second
	defaultFetchTimeout = 10 * time.Second
)

// fetcher is the wrapped record store.
type fetcher interface {
	Fetch(ctx context.Context, c clinic.Criteria) (clinic.FetchResult, error)
}

// store is the consumer interface for the fetch cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config tunes the cache. Zero values pick defaults.
type Config struct {
	// Prefix namespaces cache keys; defaults to domain.KeyPrefix.
	Prefix string
	TTL    time.Duration
	// FetchTimeout bounds a shared fetch once it is detached from its caller.
	FetchTimeout time.Duration
}

// CachedFetcher caches fetch results by criteria fingerprint.
// Concurrent identical fetches share one call to the inner fetcher.
type CachedFetcher struct {
	inner      fetcher
	store      store
	cfg        Config
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
	group      singleflight.Group
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner fetcher,
	s store,
	cfg Config,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedFetcher {
	if cfg.Prefix == "" {
		cfg.Prefix = domain.KeyPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{
		inner:      inner,
		store:      s,
		cfg:        cfg,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Fetch returns a cached result or calls the inner fetcher.
// Cache read and write failures are logged and never fail the fetch.
func (c *CachedFetcher) Fetch(ctx context.Context, crit clinic.Criteria) (clinic.FetchResult, error) {
	key := c.cacheKey(crit)

	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	// The shared call outlives any single caller: a superseded caller
	// cancelling its context must not fail the others waiting on the key.
	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.FetchTimeout)
		defer cancel()

		res, err := c.inner.Fetch(fctx, crit)
		if err != nil {
			return clinic.FetchResult{}, err
		}
		c.putToCache(fctx, key, res)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return clinic.FetchResult{}, fmt.Errorf("fetch: %w", ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return clinic.FetchResult{}, fmt.Errorf("fetch: %w", r.Err)
		}
		res, _ := r.Val.(clinic.FetchResult)
		return res, nil
	}
}

func (c *CachedFetcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// fingerprint is the canonical form hashed into a cache key.
type fingerprint struct {
	State    string   `json:"s,omitempty"`
	City     string   `json:"c,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	RadiusKm float64  `json:"r,omitempty"`
	NameHint string   `json:"n,omitempty"`
	Limit    int      `json:"l,omitempty"`
}

func (c *CachedFetcher) cacheKey(crit clinic.Criteria) string {
	crit = crit.Normalized()
	fp := fingerprint{
		State:    crit.State,
		City:     normalize.Text(crit.City),
		RadiusKm: crit.RadiusKm,
		NameHint: normalize.Text(crit.NameHint),
		Limit:    crit.Limit,
	}
	if crit.Near != nil {
		fp.Lat, fp.Lng = &crit.Near.Lat, &crit.Near.Lng
	}
	data, _ := json.Marshal(fp)
	h := sha256.Sum256(data)
	return c.cfg.Prefix + "fetch_cache:" + hex.EncodeToString(h[:])
}

func (c *CachedFetcher) getFromCache(ctx context.Context, key string) (clinic.FetchResult, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached fetch", zap.String("key", key), zap.Error(err))
		}
		return clinic.FetchResult{}, false
	}
	if len(data) == 0 {
		return clinic.FetchResult{}, false
	}

	var res clinic.FetchResult
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("Failed to parse cached fetch", zap.String("key", key), zap.Error(err))
		return clinic.FetchResult{}, false
	}
	return res, true
}

func (c *CachedFetcher) putToCache(ctx context.Context, key string, res clinic.FetchResult) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("Failed to encode fetch for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.cfg.TTL); err != nil {
		c.logger.Warn("Failed to cache fetch", zap.String("key", key), zap.Error(err))
	}
}

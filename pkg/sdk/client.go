package clinicdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/clinicdex/internal/db/redis"
	domclinic "github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
	clinicrepo "github.com/kailas-cloud/clinicdex/internal/repository/clinic"
	"github.com/kailas-cloud/clinicdex/internal/repository/fetchcache"
	healthuc "github.com/kailas-cloud/clinicdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/clinicdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	Search(ctx context.Context, c domclinic.Criteria, st filter.State) (result.Outcome, error)
	Nationwide(ctx context.Context, query string, limit int) (result.Outcome, error)
	ExpandTerms(raw string) []string
	Suggest(input string, limit int) []string
	ComputeResults(candidates []domclinic.Record, st filter.State) result.Outcome
	NewSession(opts ...searchuc.SessionOption) *searchuc.Session
}

type recordRepo interface {
	EnsureIndex(ctx context.Context) error
	Get(ctx context.Context, id string) (domclinic.Record, error)
	Upsert(ctx context.Context, rec *domclinic.Record) (bool, error)
	UpsertMany(ctx context.Context, recs []domclinic.Record) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Reindex(ctx context.Context) error
}

type closer interface {
	Close()
}

// Client is the clinicdex SDK entry point. It runs searches in-process
// against a Redis record store.
type Client struct {
	store     closer
	repo      recordRepo
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client, waits for the database and ensures the clinic index.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("clinicdex: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("clinicdex: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("clinicdex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := c.repo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("clinicdex: ensure index: %w", err)
	}
	return c, nil
}

func wireClient(store *dbRedis.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	repo := clinicrepo.New(store, cfg.keyPrefix)

	var fetcher searchuc.Fetcher = repo
	if cfg.cacheTTL > 0 {
		fetcher = fetchcache.New(repo, store, fetchcache.Config{
			Prefix: cfg.keyPrefix,
			TTL:    cfg.cacheTTL,
		}, obs.cacheCounter(), zap.NewNop())
	}

	searchSvc := searchuc.New(fetcher, cfg.lexicon, searchuc.Config{
		DefaultLimit: cfg.defaultLimit,
		FetchLimit:   cfg.fetchLimit,
		FetchTimeout: cfg.fetchTimeout,
	}, zap.NewNop())

	return &Client{
		store:     store,
		repo:      repo,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(store, repo),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

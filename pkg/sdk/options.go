package clinicdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/clinicdex/internal/domain/search/lexicon"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs     []string
	password  string
	keyPrefix string

	lexicon      *lexicon.Lexicon
	cacheTTL     time.Duration
	defaultLimit int
	fetchLimit   int
	fetchTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis instance
// with the JSON and search modules loaded.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces every key the client reads or writes.
// Defaults to "clinicdex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithLexicon replaces the built-in misspelling, synonym and phrase tables.
// Use LoadLexicon to extend the built-in tables from a YAML file.
func WithLexicon(l *Lexicon) Option {
	return optionFunc(func(c *clientConfig) {
		c.lexicon = l
	})
}

// WithCacheTTL enables the fetch cache with the given entry lifetime.
// Zero (default) disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLimits sets the default result limit and the candidate fetch size.
// Zero keeps the built-in value.
func WithLimits(defaultLimit, fetchLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.fetchLimit = fetchLimit
	})
}

// WithFetchTimeout bounds each record store fetch.
func WithFetchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations,
// search pipeline and fetch cache) on the given registerer.
// Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

package search

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/clinicdex/internal/domain"
	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/expand"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/score"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/strategy"
	logpkg "github.com/kailas-cloud/clinicdex/internal/logger"
	"github.com/kailas-cloud/clinicdex/internal/metrics"
)

// Config bounds the work of one search.
type Config struct {
	DefaultLimit int
	MaxLimit     int
	FetchLimit   int
	FetchTimeout time.Duration
	// DefaultSort applies when a request names no sort key.
	DefaultSort filter.SortKey
}

func (c Config) withDefaults() Config {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = domain.DefaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = domain.MaxLimit
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = domain.DefaultFetchLimit
	}
	c.FetchLimit = min(c.FetchLimit, domain.MaxFetchLimit)
	return c
}

// Service runs stateless searches: fetch candidates, then assemble.
type Service struct {
	fetcher  Fetcher
	lex      *lexicon.Lexicon
	taxonomy *Assembler
	name     *Assembler
	cfg      Config
	logger   *zap.Logger
}

// New creates a search service. A nil lexicon selects the built-in one.
func New(fetcher Fetcher, lex *lexicon.Lexicon, cfg Config, logger *zap.Logger) *Service {
	if lex == nil {
		lex = lexicon.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	exp := expand.New(lex)
	return &Service{
		fetcher:  fetcher,
		lex:      lex,
		taxonomy: NewAssembler(exp, score.ForStrategy(strategy.Taxonomy)),
		name:     NewAssembler(exp, score.ForStrategy(strategy.Name)),
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// Search fetches candidates narrowed by c and assembles them under st
// with the taxonomy scorer. The name hint of c is ignored.
func (s *Service) Search(ctx context.Context, c clinic.Criteria, st filter.State) (result.Outcome, error) {
	if err := s.validate(st.Query()); err != nil {
		return result.Outcome{}, err
	}
	if err := st.Validate(); err != nil {
		return result.Outcome{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	c = c.Normalized()
	if err := c.Validate(); err != nil {
		return result.Outcome{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	c.NameHint = ""

	if k, d := st.Sort(); k == filter.SortDefault && s.cfg.DefaultSort != filter.SortDefault {
		st = st.WithSort(s.cfg.DefaultSort, d)
	}
	st = st.WithLimit(s.clampLimit(st.Limit()))

	return s.run(ctx, strategy.Taxonomy, s.taxonomy, st, c)
}

// Nationwide ranks clinics anywhere by how well their name or city matches
// query. The query is sent as a name hint alongside an unnarrowed fetch and
// the union is ranked, so the hint only adds candidates the unnarrowed fetch
// truncated away.
func (s *Service) Nationwide(ctx context.Context, query string, limit int) (result.Outcome, error) {
	if err := s.validate(query); err != nil {
		return result.Outcome{}, err
	}
	cleaned := normalize.Query(query)
	if utf8.RuneCountInString(cleaned) < domain.MinQueryLength {
		return result.Outcome{}, fmt.Errorf("%w: query must be at least %d characters", domain.ErrInvalidQuery, domain.MinQueryLength)
	}

	st := filter.New(query).
		WithSort(filter.SortRelevance, filter.Desc).
		WithLimit(s.clampLimit(limit))

	return s.run(ctx, strategy.Name, s.name, st, clinic.Criteria{NameHint: cleaned}, clinic.Criteria{})
}

// ExpandTerms returns the sorted canonical terms for raw.
func (s *Service) ExpandTerms(raw string) []string {
	return s.taxonomy.ExpandTerms(raw)
}

// Suggest returns vocabulary terms resembling input.
func (s *Service) Suggest(input string, limit int) []string {
	return s.lex.Suggest(input, s.clampLimit(limit))
}

// ComputeResults assembles candidates under st without fetching.
func (s *Service) ComputeResults(candidates []clinic.Record, st filter.State) result.Outcome {
	return s.taxonomy.ComputeResults(candidates, st)
}

// NewSession creates an interactive session sharing this service's fetcher and lexicon.
func (s *Service) NewSession(opts ...SessionOption) *Session {
	return NewSession(s.fetcher, s.taxonomy, s.logger, opts...)
}

func (s *Service) run(
	ctx context.Context, strat strategy.Strategy, a *Assembler,
	st filter.State, criteria ...clinic.Criteria,
) (result.Outcome, error) {
	ctx = logpkg.WithFields(ctx, zap.String("strategy", string(strat)))
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	fetchStart := time.Now()
	res, err := s.fetch(ctx, criteria)
	metrics.SearchFetchDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(strat), metrics.OutcomeError).Inc()
		s.logger.Warn("Record store fetch failed",
			zap.String("strategy", string(strat)),
			zap.Error(err),
		)
		return result.Outcome{}, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	metrics.SearchCandidates.Observe(float64(len(res.Records)))

	computeStart := time.Now()
	out := a.ComputeResults(res.Records, st)
	metrics.SearchComputeDuration.WithLabelValues(string(strat)).Observe(time.Since(computeStart).Seconds())

	outcome := metrics.OutcomeOK
	switch {
	case len(out.Results) == 0:
		outcome = metrics.OutcomeEmpty
	case out.FellBackToUnfiltered:
		outcome = metrics.OutcomeFallback
		s.logger.Warn("Filters matched nothing, returning broader set",
			zap.String("strategy", string(strat)),
			zap.String("query", st.Query()),
			zap.Int("candidates", len(res.Records)),
		)
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(strat), outcome).Inc()

	s.logger.Debug("Search completed",
		zap.String("strategy", string(strat)),
		zap.Int("candidates", len(res.Records)),
		zap.Int("store_total", res.Total),
		zap.Int("results", len(out.Results)),
		zap.Int("total", out.Total),
		zap.Bool("fell_back", out.FellBackToUnfiltered),
	)
	return out, nil
}

// fetch runs one fetch per criteria concurrently and merges the results
// by record ID, keeping the first occurrence.
func (s *Service) fetch(ctx context.Context, criteria []clinic.Criteria) (clinic.FetchResult, error) {
	results := make([]clinic.FetchResult, len(criteria))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range criteria {
		c.Limit = s.cfg.FetchLimit
		g.Go(func() error {
			res, err := s.fetcher.Fetch(gctx, c)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return clinic.FetchResult{}, err
	}
	if len(results) == 1 {
		return results[0], nil
	}

	seen := make(map[string]struct{})
	var merged clinic.FetchResult
	for _, res := range results {
		merged.Total = max(merged.Total, res.Total)
		for _, rec := range res.Records {
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			merged.Records = append(merged.Records, rec)
		}
	}
	merged.Total = max(merged.Total, len(merged.Records))
	return merged, nil
}

func (s *Service) validate(query string) error {
	if len(query) > domain.MaxQueryLength {
		return fmt.Errorf("%w: query exceeds %d bytes", domain.ErrInvalidQuery, domain.MaxQueryLength)
	}
	return nil
}

func (s *Service) clampLimit(n int) int {
	switch {
	case n <= 0:
		return s.cfg.DefaultLimit
	case n > s.cfg.MaxLimit:
		return s.cfg.MaxLimit
	}
	return n
}

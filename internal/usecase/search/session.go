package search

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clinicdex/internal/domain"
	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
	"github.com/kailas-cloud/clinicdex/internal/metrics"
)

// Phase is a Session lifecycle state.
type Phase string

// Phases. Error is entered only from Fetching.
const (
	PhaseIdle     Phase = "idle"
	PhaseFetching Phase = "fetching"
	PhaseScoring  Phase = "scoring"
	PhaseSorting  Phase = "sorting"
	PhaseReady    Phase = "ready"
	PhaseError    Phase = "error"
)

// View is a snapshot of a Session.
type View struct {
	Phase      Phase
	Outcome    result.Outcome
	Err        error
	Generation uint64
}

// Session keeps the candidate set and filter state of one interactive
// caller. Only the most recent fetch may update it: every Fetch takes a
// new generation and results from older generations are discarded.
//
// The full candidate set is retained as fetched and every recomputation
// starts from it, so filters never compound.
type Session struct {
	fetcher   Fetcher
	assembler *Assembler
	logger    *zap.Logger
	observe   func(from, to Phase)

	gen atomic.Uint64

	mu         sync.Mutex
	phase      Phase
	state      filter.State
	candidates []clinic.Record
	outcome    result.Outcome
	err        error
	cancel     context.CancelFunc
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTransitionObserver registers fn to be called on every phase change.
// fn runs with the session lock held and must not call back into the session.
func WithTransitionObserver(fn func(from, to Phase)) SessionOption {
	return func(s *Session) { s.observe = fn }
}

// NewSession creates an idle session.
func NewSession(f Fetcher, a *Assembler, logger *zap.Logger, opts ...SessionOption) *Session {
	if a == nil {
		a = NewAssembler(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		fetcher:   f,
		assembler: a,
		logger:    logger,
		phase:     PhaseIdle,
		outcome:   result.Outcome{Results: []result.Scored{}, Terms: []string{}},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Fetch loads a new candidate set for c and recomputes under st.
//
// A superseded call returns the current view and an error wrapping
// domain.ErrStaleResult; its records are dropped. A failed fetch moves
// the session to PhaseError, keeps the previous results and returns an
// error wrapping domain.ErrTransport. The in-flight context of a
// superseded fetch is cancelled.
func (s *Session) Fetch(ctx context.Context, c clinic.Criteria, st filter.State) (View, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	gen := s.gen.Add(1)
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.state = st
	s.transition(PhaseFetching)
	s.mu.Unlock()

	res, err := s.fetcher.Fetch(fetchCtx, c)

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.gen.Load(); cur != gen {
		metrics.SearchStaleResultsTotal.Inc()
		s.logger.Info("Discarding superseded fetch result",
			zap.Uint64("generation", gen),
			zap.Uint64("current", cur),
		)
		return s.viewLocked(), domain.NewStaleResult(gen, cur)
	}
	s.cancel = nil

	if err != nil {
		s.err = fmt.Errorf("%w: %w", domain.ErrTransport, err)
		s.transition(PhaseError)
		s.logger.Warn("Fetch failed, keeping previous results",
			zap.Uint64("generation", gen),
			zap.Int("retained", len(s.outcome.Results)),
			zap.Error(err),
		)
		return s.viewLocked(), s.err
	}

	s.candidates = slices.Clone(res.Records)
	s.err = nil
	s.recomputeLocked()
	return s.viewLocked(), nil
}

// Apply replaces the filter state and recomputes from the retained
// candidates. Before the first successful fetch only the state is stored.
// A session in PhaseFetching or PhaseError keeps its phase.
func (s *Session) Apply(st filter.State) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = st
	if s.candidates == nil {
		return s.viewLocked()
	}
	if s.phase == PhaseFetching || s.phase == PhaseError {
		s.outcome = s.assembler.ComputeResults(s.candidates, s.state)
		return s.viewLocked()
	}
	s.recomputeLocked()
	return s.viewLocked()
}

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// State returns the current filter state.
func (s *Session) State() filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Candidates returns a copy of the retained, unfiltered candidate set.
func (s *Session) Candidates() []clinic.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.candidates)
}

func (s *Session) recomputeLocked() {
	s.transition(PhaseScoring)
	out := s.assembler.ComputeResults(s.candidates, s.state)
	s.transition(PhaseSorting)
	s.outcome = out
	s.transition(PhaseReady)
	if out.FellBackToUnfiltered {
		s.logger.Debug("Filters matched nothing, showing broader set",
			zap.Int("results", len(out.Results)),
		)
	}
}

func (s *Session) transition(to Phase) {
	from := s.phase
	s.phase = to
	if s.observe != nil && from != to {
		s.observe(from, to)
	}
}

func (s *Session) viewLocked() View {
	out := s.outcome
	out.Results = slices.Clone(out.Results)
	out.Terms = slices.Clone(out.Terms)
	return View{
		Phase:      s.phase,
		Outcome:    out,
		Err:        s.err,
		Generation: s.gen.Load(),
	}
}

package search

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clinicdex/internal/domain"
	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
)

// --- Mocks ---

type fetchReply struct {
	res clinic.FetchResult
	err error
}

type pendingFetch struct {
	ctx     context.Context
	c       clinic.Criteria
	release chan fetchReply
}

// controlledFetcher blocks every call until the test releases it,
// so tests decide the order in which fetches resolve.
type controlledFetcher struct {
	calls chan *pendingFetch
}

func newControlledFetcher() *controlledFetcher {
	return &controlledFetcher{calls: make(chan *pendingFetch, 8)}
}

func (f *controlledFetcher) Fetch(ctx context.Context, c clinic.Criteria) (clinic.FetchResult, error) {
	p := &pendingFetch{ctx: ctx, c: c, release: make(chan fetchReply, 1)}
	f.calls <- p
	r := <-p.release
	return r.res, r.err
}

type staticFetcher struct {
	mu    sync.Mutex
	res   clinic.FetchResult
	err   error
	calls []clinic.Criteria
}

func (f *staticFetcher) Fetch(_ context.Context, c clinic.Criteria) (clinic.FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.res, f.err
}

// routedFetcher answers each fetch from fn, so tests can model a store
// that honours the criteria hints.
type routedFetcher struct {
	fn  func(c clinic.Criteria) clinic.FetchResult
	err error
}

func (f *routedFetcher) Fetch(_ context.Context, c clinic.Criteria) (clinic.FetchResult, error) {
	if f.err != nil && c.NameHint != "" {
		return clinic.FetchResult{}, f.err
	}
	return f.fn(c), nil
}

type fetchOutcome struct {
	view View
	err  error
}

func fetchAsync(s *Session, c clinic.Criteria, st filter.State) <-chan fetchOutcome {
	done := make(chan fetchOutcome, 1)
	go func() {
		v, err := s.Fetch(context.Background(), c, st)
		done <- fetchOutcome{view: v, err: err}
	}()
	return done
}

// --- Tests ---

func TestSession_LastRequestWins(t *testing.T) {
	f := newControlledFetcher()
	s := NewSession(f, nil, zap.NewNop())

	acneDone := fetchAsync(s, clinic.Criteria{City: "Austin"}, filter.New("acne"))
	acneCall := <-f.calls
	botoxDone := fetchAsync(s, clinic.Criteria{City: "Austin"}, filter.New("botox"))
	botoxCall := <-f.calls

	if acneCall.ctx.Err() == nil {
		t.Error("superseded fetch context should be cancelled")
	}

	botoxCall.release <- fetchReply{res: clinic.FetchResult{
		Records: []clinic.Record{{ID: "botox-bar", Name: "Botox Bar"}, {ID: "acne-center", Name: "Acne Center"}},
		Total:   2,
	}}
	botox := <-botoxDone
	if botox.err != nil {
		t.Fatalf("botox fetch: %v", botox.err)
	}
	if !slices.Equal(botox.view.Outcome.IDs(), []string{"botox-bar"}) {
		t.Fatalf("botox IDs = %v", botox.view.Outcome.IDs())
	}

	// The older fetch resolves last and must be discarded.
	acneCall.release <- fetchReply{res: clinic.FetchResult{
		Records: []clinic.Record{{ID: "acne-only", Name: "Acne Only"}},
		Total:   1,
	}}
	acne := <-acneDone
	if !errors.Is(acne.err, domain.ErrStaleResult) {
		t.Fatalf("acne err = %v, want ErrStaleResult", acne.err)
	}
	var stale *domain.StaleResultError
	if !errors.As(acne.err, &stale) || stale.Generation != 1 || stale.Current != 2 {
		t.Errorf("stale error = %+v", stale)
	}

	v := s.View()
	if v.Phase != PhaseReady {
		t.Errorf("phase = %s, want ready", v.Phase)
	}
	if !slices.Equal(v.Outcome.IDs(), []string{"botox-bar"}) {
		t.Errorf("view IDs = %v, want botox result only", v.Outcome.IDs())
	}
	if slices.ContainsFunc(s.Candidates(), func(r clinic.Record) bool { return r.ID == "acne-only" }) {
		t.Error("stale records leaked into the candidate set")
	}
}

func TestSession_TransportErrorKeepsPreviousResults(t *testing.T) {
	f := &staticFetcher{res: clinic.FetchResult{Records: fiveClinics(), Total: 5}}
	var transitions []string
	s := NewSession(f, nil, zap.NewNop(), WithTransitionObserver(func(from, to Phase) {
		transitions = append(transitions, string(from)+">"+string(to))
	}))

	if _, err := s.Fetch(context.Background(), clinic.Criteria{}, filter.New("")); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	want := []string{"idle>fetching", "fetching>scoring", "scoring>sorting", "sorting>ready"}
	if !slices.Equal(transitions, want) {
		t.Errorf("transitions = %v, want %v", transitions, want)
	}

	transitions = nil
	f.err = errors.New("connection refused")
	v, err := s.Fetch(context.Background(), clinic.Criteria{}, filter.New(""))
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
	if v.Phase != PhaseError || !errors.Is(v.Err, domain.ErrTransport) {
		t.Errorf("view = %+v, want error phase", v)
	}
	if len(v.Outcome.Results) != 5 {
		t.Errorf("results = %d, want previous 5 retained", len(v.Outcome.Results))
	}
	if !slices.Equal(transitions, []string{"ready>fetching", "fetching>error"}) {
		t.Errorf("transitions = %v", transitions)
	}

	// recovery
	f.err = nil
	v, err = s.Fetch(context.Background(), clinic.Criteria{}, filter.New(""))
	if err != nil || v.Phase != PhaseReady || v.Err != nil {
		t.Errorf("after recovery: phase=%s err=%v viewErr=%v", v.Phase, err, v.Err)
	}
}

func TestSession_ApplyRecomputesFromFullSet(t *testing.T) {
	f := &staticFetcher{res: clinic.FetchResult{Records: fiveClinics(), Total: 5}}
	s := NewSession(f, nil, zap.NewNop())
	if _, err := s.Fetch(context.Background(), clinic.Criteria{}, filter.New("")); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	ny := s.Apply(filter.New("").WithStates("NY"))
	if len(ny.Outcome.Results) != 2 {
		t.Fatalf("NY results = %d, want 2", len(ny.Outcome.Results))
	}
	ca := s.Apply(filter.New("").WithStates("CA"))
	if len(ca.Outcome.Results) != 3 || ca.Outcome.FellBackToUnfiltered {
		t.Errorf("CA results = %d fellBack=%v, want 3 from the full set", len(ca.Outcome.Results), ca.Outcome.FellBackToUnfiltered)
	}
	all := s.Apply(filter.New(""))
	if len(all.Outcome.Results) != 5 {
		t.Errorf("cleared filters = %d results, want 5", len(all.Outcome.Results))
	}
	if len(f.calls) != 1 {
		t.Errorf("Apply must not fetch, got %d fetches", len(f.calls))
	}
}

func TestSession_ApplyBeforeFetch(t *testing.T) {
	s := NewSession(&staticFetcher{}, nil, nil)
	v := s.Apply(filter.New("acne").WithOpenNow(true))
	if v.Phase != PhaseIdle || len(v.Outcome.Results) != 0 {
		t.Errorf("view = %+v, want idle and empty", v)
	}
	if !s.State().OpenNow() {
		t.Error("state not stored")
	}
}

func TestSession_ViewIsACopy(t *testing.T) {
	f := &staticFetcher{res: clinic.FetchResult{Records: fiveClinics(), Total: 5}}
	s := NewSession(f, nil, zap.NewNop())
	v, _ := s.Fetch(context.Background(), clinic.Criteria{}, filter.New(""))
	v.Outcome.Results[0].Record.ID = "mutated"
	if s.View().Outcome.Results[0].Record.ID == "mutated" {
		t.Error("View exposes internal results")
	}
}

package clinicdex

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/clinicdex/internal/domain"
	domclinic "github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/clinicdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/clinicdex/internal/usecase/search"
)

func newTestClient(s searchUseCase, r recordRepo, obs *observer) (*Client, *mockCloser) {
	cl := &mockCloser{}
	return &Client{
		store:     cl,
		repo:      r,
		searchSvc: s,
		healthSvc: &mockHealthUC{},
		obs:       obs,
	}, cl
}

func ptr[T any](v T) *T { return &v }

func TestNew_NoAddress(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	lex := newTestLexicon()
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithRedis("localhost:6379", "pw"),
		WithKeyPrefix("test:"),
		WithLexicon(lex),
		WithCacheTTL(30 * time.Second),
		WithLimits(20, 300),
		WithFetchTimeout(2 * time.Second),
		WithLogger(slog.Default()),
		WithPrometheus(reg),
	} {
		o.apply(cfg)
	}

	if !slices.Equal(cfg.addrs, []string{"localhost:6379"}) || cfg.password != "pw" {
		t.Errorf("addrs/password = %v/%q", cfg.addrs, cfg.password)
	}
	if cfg.keyPrefix != "test:" || cfg.lexicon != lex {
		t.Errorf("prefix/lexicon not applied: %+v", cfg)
	}
	if cfg.cacheTTL != 30*time.Second || cfg.fetchTimeout != 2*time.Second {
		t.Errorf("durations = %v/%v", cfg.cacheTTL, cfg.fetchTimeout)
	}
	if cfg.defaultLimit != 20 || cfg.fetchLimit != 300 {
		t.Errorf("limits = %d/%d", cfg.defaultLimit, cfg.fetchLimit)
	}
	if cfg.logger == nil || cfg.metricsReg == nil {
		t.Error("logger/metrics not applied")
	}
}

func newTestLexicon() *Lexicon {
	lex, err := LoadLexicon("")
	if err != nil {
		panic(err)
	}
	return lex
}

func TestClient_Search(t *testing.T) {
	var gotCrit domclinic.Criteria
	var gotFilter filter.State
	svc := &mockSearchUC{
		searchFn: func(_ context.Context, c domclinic.Criteria, st filter.State) (result.Outcome, error) {
			gotCrit, gotFilter = c, st
			return result.Outcome{
				Results:              []result.Scored{{Record: domclinic.Record{ID: "c1"}, Score: 3}},
				Total:                1,
				FellBackToUnfiltered: true,
			}, nil
		},
	}
	client, _ := newTestClient(svc, nil, nil)

	out, err := client.Search(context.Background(), Criteria{State: "TX"}, NewFilter("acne").WithMinRating(4))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !out.FellBackToUnfiltered || out.Total != 1 || out.Results[0].Record.ID != "c1" {
		t.Errorf("outcome = %+v", out)
	}
	if gotCrit.State != "TX" || gotFilter.Query() != "acne" || gotFilter.MinRating() != 4 {
		t.Errorf("passed criteria=%+v query=%q rating=%v", gotCrit, gotFilter.Query(), gotFilter.MinRating())
	}
}

func TestClient_Search_Error(t *testing.T) {
	svc := &mockSearchUC{
		searchFn: func(context.Context, domclinic.Criteria, filter.State) (result.Outcome, error) {
			return result.Outcome{}, domain.ErrTransport
		},
	}
	client, _ := newTestClient(svc, nil, nil)

	_, err := client.Search(context.Background(), Criteria{}, NewFilter(""))
	if !errors.Is(err, ErrTransport) {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}

func TestClient_Nationwide(t *testing.T) {
	svc := &mockSearchUC{
		nationwideFn: func(_ context.Context, q string, limit int) (result.Outcome, error) {
			if q != "mayo" || limit != 5 {
				t.Errorf("args = %q/%d", q, limit)
			}
			return result.Outcome{Total: 2}, nil
		},
	}
	client, _ := newTestClient(svc, nil, nil)

	out, err := client.Nationwide(context.Background(), "mayo", 5)
	if err != nil || out.Total != 2 {
		t.Errorf("Nationwide() = %+v, %v", out, err)
	}
}

func TestClient_Nationwide_FallbackSignalled(t *testing.T) {
	fetcher := &mockFetcher{records: []domclinic.Record{
		{ID: "glow", Name: "Glow Skin", City: "Denver"},
		{ID: "radiance", Name: "Radiance", City: "Boston"},
	}}
	client, _ := newTestClient(searchuc.New(fetcher, nil, searchuc.Config{}, nil), nil, nil)

	out, err := client.Nationwide(context.Background(), "glow skin", 10)
	if err != nil {
		t.Fatalf("Nationwide(match) error = %v", err)
	}
	if out.FellBackToUnfiltered || !slices.Equal(out.IDs(), []string{"glow"}) {
		t.Errorf("match: IDs = %v fellBack=%v", out.IDs(), out.FellBackToUnfiltered)
	}

	out, err = client.Nationwide(context.Background(), "zzzz qqq", 10)
	if err != nil {
		t.Fatalf("Nationwide(no match) error = %v", err)
	}
	if !out.FellBackToUnfiltered || len(out.Results) != 2 {
		t.Errorf("no match: results = %d fellBack=%v, want both clinics with fallback",
			len(out.Results), out.FellBackToUnfiltered)
	}
}

func TestClient_PureOperations(t *testing.T) {
	svc := &mockSearchUC{
		expandFn:  func(raw string) []string { return []string{"acne", raw} },
		suggestFn: func(string, int) []string { return []string{"dermatitis"} },
		computeFn: func(c []domclinic.Record, _ filter.State) result.Outcome {
			return result.Outcome{Total: len(c)}
		},
		sessionFn: func(...searchuc.SessionOption) *searchuc.Session {
			return searchuc.NewSession(nil, nil, nil)
		},
	}
	client, _ := newTestClient(svc, nil, nil)

	if got := client.ExpandTerms("zits"); !slices.Equal(got, []string{"acne", "zits"}) {
		t.Errorf("ExpandTerms() = %v", got)
	}
	if got := client.Suggest("derm", 3); len(got) != 1 {
		t.Errorf("Suggest() = %v", got)
	}
	if got := client.ComputeResults([]Record{{ID: "a"}, {ID: "b"}}, NewFilter("")); got.Total != 2 {
		t.Errorf("ComputeResults().Total = %d", got.Total)
	}
	if s := client.NewSession(); s == nil || s.View().Phase != searchuc.PhaseIdle {
		t.Error("NewSession() did not return an idle session")
	}
}

func TestClient_Upsert(t *testing.T) {
	repo := &mockRepo{
		upsertFn: func(_ context.Context, rec *domclinic.Record) (bool, error) {
			return rec.ID == "new", nil
		},
	}
	client, _ := newTestClient(nil, repo, nil)

	created, err := client.Upsert(context.Background(), &Record{ID: "new", Name: "New Clinic"})
	if err != nil || !created {
		t.Errorf("Upsert() = %v, %v", created, err)
	}
}

func TestClient_Get_NotFound(t *testing.T) {
	repo := &mockRepo{
		getFn: func(context.Context, string) (domclinic.Record, error) {
			return domclinic.Record{}, domain.ErrNotFound
		},
	}
	client, _ := newTestClient(nil, repo, nil)

	_, err := client.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_UpsertBatch(t *testing.T) {
	tests := []struct {
		name          string
		recs          []Record
		repoErr       error
		wantSucceeded int
		wantFailed    int
		wantStored    []string
		wantErr       bool
	}{
		{
			name:          "all valid",
			recs:          []Record{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
			wantSucceeded: 2,
			wantStored:    []string{"a", "b"},
		},
		{
			name:          "invalid item reported, rest stored",
			recs:          []Record{{ID: "a", Name: "A"}, {ID: "", Name: "No ID"}, {ID: "c", Name: "C", Rating: ptr(9.0)}},
			wantSucceeded: 1,
			wantFailed:    2,
			wantStored:    []string{"a"},
		},
		{
			name:       "all invalid skips store",
			recs:       []Record{{ID: "x"}},
			wantFailed: 1,
		},
		{
			name:    "store error",
			recs:    []Record{{ID: "a", Name: "A"}},
			repoErr: errors.New("connection reset"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored []string
			repo := &mockRepo{
				upsertManyFn: func(_ context.Context, recs []domclinic.Record) error {
					for i := range recs {
						stored = append(stored, recs[i].ID)
					}
					return tt.repoErr
				},
			}
			client, _ := newTestClient(nil, repo, nil)

			resp, err := client.UpsertBatch(context.Background(), tt.recs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if resp.Succeeded != tt.wantSucceeded || resp.Failed != tt.wantFailed {
				t.Errorf("succeeded/failed = %d/%d, want %d/%d",
					resp.Succeeded, resp.Failed, tt.wantSucceeded, tt.wantFailed)
			}
			if !slices.Equal(stored, tt.wantStored) {
				t.Errorf("stored = %v, want %v", stored, tt.wantStored)
			}
			for _, r := range resp.Results {
				if !r.OK && !errors.Is(r.Err, ErrInvalidRecord) {
					t.Errorf("item %q err = %v, want ErrInvalidRecord", r.ID, r.Err)
				}
			}
		})
	}
}

func TestClient_Maintenance(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver() error = %v", err)
	}
	reindexed := false
	repo := &mockRepo{
		deleteFn: func(_ context.Context, id string) error {
			if id == "gone" {
				return domain.ErrNotFound
			}
			return nil
		},
		countFn: func(context.Context) (int, error) { return 7, nil },
		reindexFn: func(context.Context) error {
			reindexed = true
			return nil
		},
	}
	client, _ := newTestClient(nil, repo, obs)
	ctx := context.Background()

	if err := client.Delete(ctx, "c1"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := client.Delete(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}
	if n, err := client.Count(ctx); err != nil || n != 7 {
		t.Errorf("Count() = %d, %v", n, err)
	}
	if err := client.Reindex(ctx); err != nil || !reindexed {
		t.Errorf("Reindex() = %v, reindexed=%v", err, reindexed)
	}
	if v := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("delete", "error")); v != 1 {
		t.Errorf("delete error count = %v, want 1", v)
	}
}

func TestClient_Health(t *testing.T) {
	client, _ := newTestClient(nil, nil, nil)
	client.healthSvc = &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "search_index": healthuc.CheckError},
	}}

	h := client.Health(context.Background())
	if h.Status != "degraded" || h.Checks["search_index"] != "error" {
		t.Errorf("Health() = %+v", h)
	}
	if h.Healthy() {
		t.Error("degraded status reported as healthy")
	}
	if !(HealthStatus{Status: "ok"}).Healthy() {
		t.Error("ok status reported as unhealthy")
	}
}

func TestClient_Close(t *testing.T) {
	client, cl := newTestClient(nil, nil, nil)
	client.Close()
	if cl.closed != 1 {
		t.Errorf("closed = %d, want 1", cl.closed)
	}
}

func TestObserver_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver() error = %v", err)
	}
	svc := &mockSearchUC{
		searchFn: func(context.Context, domclinic.Criteria, filter.State) (result.Outcome, error) {
			return result.Outcome{}, nil
		},
		nationwideFn: func(context.Context, string, int) (result.Outcome, error) {
			return result.Outcome{}, domain.ErrInvalidQuery
		},
	}
	client, _ := newTestClient(svc, nil, obs)

	_, _ = client.Search(context.Background(), Criteria{}, NewFilter(""))
	_, _ = client.Nationwide(context.Background(), "x", 1)

	if v := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "ok")); v != 1 {
		t.Errorf("search ok = %v, want 1", v)
	}
	if v := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("nationwide", "error")); v != 1 {
		t.Errorf("nationwide error = %v, want 1", v)
	}

	// A second observer on the same registry reuses the collectors.
	obs2, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second newObserver() error = %v", err)
	}
	if obs2.metrics.operations != obs.metrics.operations {
		t.Error("second observer did not reuse the registered counter")
	}
}

func TestObserver_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs, err := newObserver(logger, nil)
	if err != nil {
		t.Fatalf("newObserver() error = %v", err)
	}

	obs.observe("upsert", time.Now(), errors.New("boom"))
	if !strings.Contains(buf.String(), "operation failed") || !strings.Contains(buf.String(), "op=upsert") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("noop", time.Now(), nil)
	if obs.cacheCounter() == nil {
		t.Error("cacheCounter() must not be nil without metrics")
	}
}

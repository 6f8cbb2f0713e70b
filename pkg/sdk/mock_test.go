package clinicdex

import (
	"context"

	domclinic "github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/clinicdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/clinicdex/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn     func(ctx context.Context, c domclinic.Criteria, st filter.State) (result.Outcome, error)
	nationwideFn func(ctx context.Context, query string, limit int) (result.Outcome, error)
	expandFn     func(raw string) []string
	suggestFn    func(input string, limit int) []string
	computeFn    func(candidates []domclinic.Record, st filter.State) result.Outcome
	sessionFn    func(opts ...searchuc.SessionOption) *searchuc.Session
}

func (m *mockSearchUC) Search(ctx context.Context, c domclinic.Criteria, st filter.State) (result.Outcome, error) {
	return m.searchFn(ctx, c, st)
}

func (m *mockSearchUC) Nationwide(ctx context.Context, query string, limit int) (result.Outcome, error) {
	return m.nationwideFn(ctx, query, limit)
}

func (m *mockSearchUC) ExpandTerms(raw string) []string { return m.expandFn(raw) }

func (m *mockSearchUC) Suggest(input string, limit int) []string { return m.suggestFn(input, limit) }

func (m *mockSearchUC) ComputeResults(candidates []domclinic.Record, st filter.State) result.Outcome {
	return m.computeFn(candidates, st)
}

func (m *mockSearchUC) NewSession(opts ...searchuc.SessionOption) *searchuc.Session {
	return m.sessionFn(opts...)
}

// --- recordRepo mock ---

type mockRepo struct {
	ensureFn     func(ctx context.Context) error
	getFn        func(ctx context.Context, id string) (domclinic.Record, error)
	upsertFn     func(ctx context.Context, rec *domclinic.Record) (bool, error)
	upsertManyFn func(ctx context.Context, recs []domclinic.Record) error
	deleteFn     func(ctx context.Context, id string) error
	countFn      func(ctx context.Context) (int, error)
	reindexFn    func(ctx context.Context) error
}

func (m *mockRepo) EnsureIndex(ctx context.Context) error { return m.ensureFn(ctx) }

func (m *mockRepo) Get(ctx context.Context, id string) (domclinic.Record, error) {
	return m.getFn(ctx, id)
}

func (m *mockRepo) Upsert(ctx context.Context, rec *domclinic.Record) (bool, error) {
	return m.upsertFn(ctx, rec)
}

func (m *mockRepo) UpsertMany(ctx context.Context, recs []domclinic.Record) error {
	return m.upsertManyFn(ctx, recs)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error { return m.deleteFn(ctx, id) }

func (m *mockRepo) Count(ctx context.Context) (int, error) { return m.countFn(ctx) }

func (m *mockRepo) Reindex(ctx context.Context) error { return m.reindexFn(ctx) }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- closer mock ---

type mockCloser struct {
	closed int
}

func (m *mockCloser) Close() { m.closed++ }

// --- fetcher mock ---

type mockFetcher struct {
	records []domclinic.Record
}

func (m *mockFetcher) Fetch(_ context.Context, _ domclinic.Criteria) (domclinic.FetchResult, error) {
	return domclinic.FetchResult{Records: m.records, Total: len(m.records)}, nil
}

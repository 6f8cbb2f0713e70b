package fetchcache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clinicdex/internal/db"
	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
)

// --- Mocks ---

type mockFetcher struct {
	calls  atomic.Int32
	result clinic.FetchResult
	err    error
	// gate, when set, blocks Fetch until closed.
	gate chan struct{}
}

func (m *mockFetcher) Fetch(ctx context.Context, _ clinic.Criteria) (clinic.FetchResult, error) {
	m.calls.Add(1)
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return clinic.FetchResult{}, ctx.Err()
		}
	}
	return m.result, m.err
}

// memStore is an in-memory KV store.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_fetch_cache_total"}, []string{"result"})
}

func newTestFetcher(t *testing.T, inner *mockFetcher) (*CachedFetcher, *memStore, *prometheus.CounterVec) {
	t.Helper()
	ms := newMemStore()
	counter := newCounter()
	return New(inner, ms, Config{TTL: 30 * time.Second}, counter, zap.NewNop()), ms, counter
}

package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockIndexChecker struct {
	err    error
	called bool
}

func (m *mockIndexChecker) IndexReady(_ context.Context) error {
	m.called = true
	return m.err
}

// --- Tests ---

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		indexErr   error
		noIndex    bool
		wantStatus Status
		wantDB     CheckResult
		wantIndex  CheckResult
	}{
		{name: "all healthy", wantStatus: Healthy, wantDB: CheckOK, wantIndex: CheckOK},
		{
			name: "index missing", indexErr: errors.New("unknown index"),
			wantStatus: Degraded, wantDB: CheckOK, wantIndex: CheckError,
		},
		{
			name: "db down", dbErr: errors.New("conn refused"),
			wantStatus: Unhealthy, wantDB: CheckError, wantIndex: CheckError,
		},
		{name: "no index checker", noIndex: true, wantStatus: Healthy, wantDB: CheckOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := &mockIndexChecker{err: tt.indexErr}
			var svc *Service
			if tt.noIndex {
				svc = New(&mockDBPinger{err: tt.dbErr}, nil)
			} else {
				svc = New(&mockDBPinger{err: tt.dbErr}, idx)
			}

			r := svc.Check(context.Background())
			if r.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tt.wantStatus)
			}
			if r.Checks["database"] != tt.wantDB {
				t.Errorf("database = %q, want %q", r.Checks["database"], tt.wantDB)
			}
			if r.Checks["search_index"] != tt.wantIndex {
				t.Errorf("search_index = %q, want %q", r.Checks["search_index"], tt.wantIndex)
			}
			if tt.dbErr != nil && idx.called {
				t.Error("index probe should be skipped when the store is down")
			}
		})
	}
}

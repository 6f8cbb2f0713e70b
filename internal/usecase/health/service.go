package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store is up but search cannot serve results.
	Degraded Status = "degraded"
	// Unhealthy indicates the record store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db    DBPinger
	index IndexChecker
}

// New creates a Service. index can be nil.
func New(db DBPinger, index IndexChecker) *Service {
	return &Service{db: db, index: index}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	// An unreachable store makes the index probe meaningless.
	if s.index != nil {
		switch {
		case checks["database"] == CheckError:
			checks["search_index"] = CheckError
		case s.index.IndexReady(ctx) != nil:
			checks["search_index"] = CheckError
		default:
			checks["search_index"] = CheckOK
		}
	}

	status := Healthy
	if checks["database"] == CheckError {
		status = Unhealthy
	} else if checks["search_index"] == CheckError {
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

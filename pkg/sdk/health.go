package clinicdex

import (
	"context"

	healthuc "github.com/kailas-cloud/clinicdex/internal/usecase/health"
)

// HealthStatus is the aggregated state of the record store and its index.
type HealthStatus struct {
	Status string            // "ok", "degraded" (index missing), "error" (store unreachable)
	Checks map[string]string // component ("database", "search_index") -> "ok"/"error"
}

// Healthy reports whether searches can be served.
func (h HealthStatus) Healthy() bool {
	return h.Status == string(healthuc.Healthy)
}

// Health pings the store and checks the clinic index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for component, res := range report.Checks {
		checks[component] = string(res)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total number of clinic searches by scoring strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	SearchComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_compute_duration_seconds",
			Help:      "Time spent filtering, scoring and sorting candidates",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"strategy"},
	)

	SearchFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_fetch_duration_seconds",
			Help:      "Record store fetch duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_candidates",
			Help:      "Number of candidate records fetched per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	SearchStaleResultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_stale_results_total",
			Help:      "Fetch results discarded because a newer fetch superseded them",
		},
	)

	FetchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fetch_cache_total",
			Help:      "Record store fetch cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SkippedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "store_skipped_records_total",
			Help:      "Fetched clinic documents dropped because they could not be parsed",
		},
	)
)

var registerSearchOnce sync.Once

// SearchCollectors returns the search metrics for registration on a custom registry.
func SearchCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		SearchRequestsTotal,
		SearchComputeDuration,
		SearchFetchDuration,
		SearchCandidates,
		SearchStaleResultsTotal,
		FetchCacheTotal,
		SkippedRecordsTotal,
	}
}

// RegisterSearchMetrics registers the search metrics with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchCollectors()...)
	})
}

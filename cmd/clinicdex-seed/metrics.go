package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// loaderMetrics tracks seeding progress.
type loaderMetrics struct {
	rowsProcessed prometheus.Counter
	rowsFailed    *prometheus.CounterVec
	batchesTotal  prometheus.Counter
	batchDuration prometheus.Histogram
}

func newLoaderMetrics(reg prometheus.Registerer) *loaderMetrics {
	m := &loaderMetrics{
		rowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinicdex_seed",
			Name:      "rows_processed_total",
			Help:      "Total clinic records stored",
		}),
		rowsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicdex_seed",
			Name:      "rows_failed_total",
			Help:      "Total clinic records rejected or not stored",
		}, []string{"reason"}),
		batchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinicdex_seed",
			Name:      "batches_total",
			Help:      "Total batches sent",
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "clinicdex_seed",
			Name:      "batch_duration_seconds",
			Help:      "Batch upsert duration",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
	reg.MustRegister(m.rowsProcessed, m.rowsFailed, m.batchesTotal, m.batchDuration)
	return m
}

// serveMetrics exposes reg on :port/metrics. An empty port disables it.
func serveMetrics(port string, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	if port == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Serving loader metrics", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Metrics server error", zap.Error(err))
		}
	}()
	return srv
}

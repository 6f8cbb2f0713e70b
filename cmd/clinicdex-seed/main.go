// Command clinicdex-seed loads clinic records into the record store.
//
// Usage:
//
//	clinicdex-seed -file clinics.json -workers 4 -batch-size 200
//
// The input is a JSON array of clinic objects or newline-delimited JSON;
// "-" reads standard input.
//
// Env vars:
//
//	REDIS_ADDR     - Redis address (default: localhost:6379)
//	REDIS_PASSWORD - Redis password
//	KEY_PREFIX     - key namespace (default: clinicdex:)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clinicdex/internal/config"
	logpkg "github.com/kailas-cloud/clinicdex/internal/logger"
	clinicdex "github.com/kailas-cloud/clinicdex/pkg/sdk"
)

type seedConfig struct {
	file        string
	workers     int
	batchSize   int
	maxRows     int
	metricsPort string
	logLevel    string
	reindex     bool
}

func main() {
	cfg := parseFlags()

	logger, err := logpkg.NewLogger(config.GetEnv(), cfg.logLevel)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		cancel()
		logger.Fatal("Seeding failed", zap.Error(err))
	}
}

func parseFlags() seedConfig {
	cfg := seedConfig{}
	flag.StringVar(&cfg.file, "file", "-", "JSON or NDJSON file with clinic records (- for stdin)")
	flag.IntVar(&cfg.workers, "workers", 4, "number of parallel upsert workers")
	flag.IntVar(&cfg.batchSize, "batch-size", 200, "records per batch upsert")
	flag.IntVar(&cfg.maxRows, "max-rows", 0, "max records to load (0=unlimited)")
	flag.StringVar(&cfg.metricsPort, "metrics-port", "", "Prometheus metrics port (empty disables)")
	flag.StringVar(&cfg.logLevel, "log-level", "", "log level override")
	flag.BoolVar(&cfg.reindex, "reindex", false, "drop and recreate the search index before loading")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg seedConfig, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	metrics := newLoaderMetrics(reg)
	if srv := serveMetrics(cfg.metricsPort, reg, logger); srv != nil {
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	in, closeInput, err := openInput(cfg.file)
	if err != nil {
		return err
	}
	defer closeInput()

	client, err := clinicdex.New(ctx,
		clinicdex.WithRedis(env("REDIS_ADDR", "localhost:6379"), os.Getenv("REDIS_PASSWORD")),
		clinicdex.WithKeyPrefix(env("KEY_PREFIX", "")),
		clinicdex.WithPrometheus(reg),
	)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	if cfg.reindex {
		if err := client.Reindex(ctx); err != nil {
			return err
		}
		logger.Info("Search index recreated")
	}
	if h := client.Health(ctx); !h.Healthy() {
		logger.Warn("Store is not fully healthy, seeded clinics may not be searchable yet",
			zap.String("status", h.Status),
			zap.Any("checks", h.Checks),
		)
	}

	ing := &ingester{
		store:     client,
		workers:   cfg.workers,
		batchSize: cfg.batchSize,
		maxRows:   cfg.maxRows,
		metrics:   metrics,
		logger:    logger,
	}
	res, err := ing.Run(ctx, in)

	rate := 0.0
	if s := res.Duration.Seconds(); s > 0 {
		rate = float64(res.Processed) / s
	}
	logger.Info("Seeding finished",
		zap.Int64("read", res.Read),
		zap.Int64("stored", res.Processed),
		zap.Int64("failed", res.Failed),
		zap.Duration("elapsed", res.Duration.Round(time.Millisecond)),
		zap.Float64("rows_per_sec", rate),
	)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	if n, cerr := client.Count(ctx); cerr != nil {
		logger.Warn("Could not count indexed clinics", zap.Error(cerr))
	} else {
		logger.Info("Index size", zap.Int("clinics", n))
	}
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

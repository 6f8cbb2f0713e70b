package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clinicdex/internal/config"
	dbRedis "github.com/kailas-cloud/clinicdex/internal/db/redis"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/filter"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/lexicon"
	logpkg "github.com/kailas-cloud/clinicdex/internal/logger"
	"github.com/kailas-cloud/clinicdex/internal/metrics"
	clinicrepo "github.com/kailas-cloud/clinicdex/internal/repository/clinic"
	"github.com/kailas-cloud/clinicdex/internal/repository/fetchcache"
	chiTransport "github.com/kailas-cloud/clinicdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/clinicdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/clinicdex/internal/usecase/search"
	"github.com/kailas-cloud/clinicdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting clinicdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("fetch_cache", cfg.Cache.Enabled),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	repo := clinicrepo.New(store, cfg.Storage.KeyPrefix)
	if err := repo.EnsureIndex(ctx); err != nil {
		// Search answers 503 until the index shows up; health reports degraded.
		logger.Error("Failed to ensure clinic index", zap.Error(err))
	}

	metrics.RegisterSearchMetrics()

	lex, err := lexicon.LoadFile(cfg.Search.LexiconFile)
	if err != nil {
		logger.Fatal("Failed to load lexicon", zap.Error(err))
	}

	var fetcher searchuc.Fetcher = repo
	if cfg.Cache.Enabled {
		fetcher = fetchcache.New(repo, store, fetchcache.Config{
			Prefix:       cfg.Storage.KeyPrefix,
			TTL:          cfg.Cache.TTL(),
			FetchTimeout: cfg.Search.FetchTimeout(),
		}, metrics.FetchCacheTotal, logger)
	}

	searchSvc := searchuc.New(fetcher, lex, searchuc.Config{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		FetchLimit:   cfg.Search.FetchLimit,
		FetchTimeout: cfg.Search.FetchTimeout(),
		DefaultSort:  filter.SortKey(cfg.Search.DefaultSort),
	}, logger)
	healthSvc := healthuc.New(store, repo)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys: cfg.Auth.APIKeys,
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

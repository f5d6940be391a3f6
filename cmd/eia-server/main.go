package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mohammed-shakir/eia-search/internal/cache"
	"github.com/mohammed-shakir/eia-search/internal/cache/memstore"
	"github.com/mohammed-shakir/eia-search/internal/cache/redisstore"
	"github.com/mohammed-shakir/eia-search/internal/core/config"
	"github.com/mohammed-shakir/eia-search/internal/core/health"
	"github.com/mohammed-shakir/eia-search/internal/core/httpclient"
	"github.com/mohammed-shakir/eia-search/internal/core/observability"
	"github.com/mohammed-shakir/eia-search/internal/core/server"
	"github.com/mohammed-shakir/eia-search/internal/eia"
	"github.com/mohammed-shakir/eia-search/internal/logger"
	"github.com/mohammed-shakir/eia-search/internal/metadata"
	"github.com/mohammed-shakir/eia-search/internal/metrics"
	"github.com/mohammed-shakir/eia-search/internal/search"
	"github.com/mohammed-shakir/eia-search/pkg/invalidation/kafka"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Printf("config: %v", err)
		return 1
	}

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "eia-server",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting eia-server",
		"addr", cfg.Addr,
		"version", Version,
		"base_url", cfg.BaseURL,
		"cache_backend", cfg.CacheBackend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := httpclient.NewOutbound(cfg.HTTPTimeout)
	api, err := eia.New(appLog, httpClient, cfg.BaseURL, cfg.APIKey)
	if err != nil {
		appLog.Error("failed to initialize api client", "err", err)
		return 1
	}

	var store cache.Store
	switch cfg.CacheBackend {
	case "redis":
		rc, err := redisstore.New(ctx, cfg.RedisAddr)
		if err != nil {
			appLog.Error("redis connect failed", "addr", cfg.RedisAddr, "err", err)
			return 1
		}
		defer rc.Close()
		store = rc
	default:
		store = memstore.New(cfg.CacheSize, cfg.CacheTTL)
	}

	meta := metadata.New(appLog, store, api, cfg.CacheTTL)
	svc := search.New(appLog, api, meta)

	var readiness []health.ReadinessReporter
	invCfg := kafka.FromEnv()
	if invCfg.Enabled && invCfg.Driver == kafka.DriverKafka {
		runner := kafka.New(invCfg, meta, kafka.Options{Logger: appLog})
		if err := runner.Start(ctx); err != nil {
			appLog.Error("invalidation runner start failed", "err", err)
			return 1
		}
		defer runner.Stop()
		readiness = append(readiness, runner)
	}

	if os.Getenv("METRICS_ENABLED") == "true" {
		startMetricsListener(ctx, appLog)
	}

	if err := server.Run(ctx, server.Options{Addr: cfg.Addr, Readiness: readiness}, appLog, svc); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}

// startMetricsListener serves a dedicated scrape endpoint so metrics
// can live on a port not exposed to search clients.
func startMetricsListener(ctx context.Context, appLog *slog.Logger) {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		addr = ":9090"
	}
	path := os.Getenv("METRICS_PATH")
	if path == "" {
		path = "/metrics"
	}

	p := metrics.Init(metrics.Config{
		Enabled: true,
		Addr:    addr,
		Path:    path,
		Build: metrics.BuildInfo{
			Version:   os.Getenv("BUILD_VERSION"),
			Revision:  os.Getenv("BUILD_REVISION"),
			BuildDate: os.Getenv("BUILD_DATE"),
		},
	})

	mux := http.NewServeMux()
	mux.Handle(path, p.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		appLog.Info("metrics listen", "addr", addr, "path", path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("metrics server exited", "err", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLog.Error("metrics shutdown error", "err", err)
		}
	}()
}

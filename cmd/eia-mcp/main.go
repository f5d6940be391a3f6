package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mohammed-shakir/eia-search/internal/cache"
	"github.com/mohammed-shakir/eia-search/internal/cache/memstore"
	"github.com/mohammed-shakir/eia-search/internal/cache/redisstore"
	"github.com/mohammed-shakir/eia-search/internal/core/config"
	"github.com/mohammed-shakir/eia-search/internal/core/httpclient"
	"github.com/mohammed-shakir/eia-search/internal/eia"
	"github.com/mohammed-shakir/eia-search/internal/logger"
	"github.com/mohammed-shakir/eia-search/internal/mcpserver"
	"github.com/mohammed-shakir/eia-search/internal/metadata"
	"github.com/mohammed-shakir/eia-search/internal/search"
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

	// stdout carries the MCP protocol in stdio mode, so logs go to stderr
	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "eia-mcp",
	}, os.Stderr)
	appLog := logger.NewSlog(&zl)

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

	mcpSrv := mcpserver.New(appLog, Version, svc)

	switch cfg.MCPTransport {
	case "sse":
		appLog.Info("starting eia-mcp", "transport", "sse", "addr", cfg.Addr, "version", Version)
		if err := mcpSrv.ServeSSE(cfg.Addr); err != nil {
			appLog.Error("sse server exited with error", "err", err)
			return 1
		}
	default:
		appLog.Info("starting eia-mcp", "transport", "stdio", "version", Version)
		if err := mcpSrv.ServeStdio(); err != nil {
			appLog.Error("stdio server exited with error", "err", err)
			return 1
		}
	}
	return 0
}

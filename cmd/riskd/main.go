// Command riskd serves the winter injury risk calibration and corridor
// aggregation API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/winter-risk-engine/internal/adapter/http"
	modeladapter "github.com/couchcryptid/winter-risk-engine/internal/adapter/model"
	"github.com/couchcryptid/winter-risk-engine/internal/config"
	"github.com/couchcryptid/winter-risk-engine/internal/domain"
	"github.com/couchcryptid/winter-risk-engine/internal/engine"
	"github.com/couchcryptid/winter-risk-engine/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	graph, err := domain.LoadGraph(cfg.GraphDatasetPath)
	if err != nil {
		logger.Error("failed to load neighborhood graph", "path", cfg.GraphDatasetPath, "error", err)
		os.Exit(1)
	}
	logger.Info("neighborhood graph loaded", "path", cfg.GraphDatasetPath, "neighborhoods", graph.Len())

	client := modeladapter.NewClient(cfg.ModelURL, cfg.ModelToken, cfg.ModelTimeout, logger)
	cached := modeladapter.NewCachedModel(client, cfg.ModelCacheSize, metrics)
	logger.Info("model client configured",
		"url", cfg.ModelURL,
		"timeout", cfg.ModelTimeout,
		"cache_size", cfg.ModelCacheSize,
	)

	eng := engine.New(graph, cached, cfg.Calibration, cfg.Thresholds, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, eng, eng, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

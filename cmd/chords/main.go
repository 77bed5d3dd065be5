package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/adapter/chords"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/adapter/httpserv"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/config"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/export"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/observability"
	"github.com/rizzo-rocks/CHORDS-Data-Downloader/internal/retrieve"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The metrics endpoint is optional; a plain one-shot download has no
	// need for it.
	var srv *httpserv.Server
	if cfg.MetricsAddr != "" {
		srv = httpserv.NewServer(cfg.MetricsAddr, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := run(ctx, cfg, logger, metrics)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("download failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("download complete")
}

// run wires the client, retriever, and writer together and hands the
// instrument loop to the runner.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	client := chords.NewClient(cfg.PortalURL, chords.Credentials{
		Email:  cfg.UserEmail,
		APIKey: cfg.APIKey,
	}, cfg.HTTPTimeout, metrics, logger)
	fetcher := chords.RateLimited(client, cfg.RequestsPerSecond, cfg.RequestBurst)
	retriever := retrieve.New(fetcher, logger, metrics)

	writer, err := export.NewWriter(cfg.DataDir, logger, metrics)
	if err != nil {
		return err
	}

	runner := retrieve.NewRunner(retriever, writer, logger)
	return runner.Run(ctx, retrieve.RunRequest{
		Portal:        cfg.Portal,
		InstrumentIDs: cfg.InstrumentIDs,
		Range:         cfg.Range,
		Window:        cfg.Window,
		NullMarker:    cfg.NullValue,
		IncludeTest:   cfg.IncludeTest,
		Columns:       cfg.Columns,
	})
}

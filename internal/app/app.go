// Package app wires configuration, the catalog and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"course-explorer/internal/catalog"
	"course-explorer/internal/config"
	"course-explorer/internal/providers"
	"course-explorer/internal/providers/backend"
	"course-explorer/internal/providers/snapshot"
	"course-explorer/internal/query"
	"course-explorer/internal/taxonomy"
	"course-explorer/internal/transport/middleware"
	"course-explorer/internal/transport/rest"
)

// NewSource picks the snapshot directory when one is configured and the
// backend otherwise.
func NewSource(cfg config.UpstreamConfig, log *slog.Logger) providers.TaxonomySource {
	if cfg.SnapshotDir != "" {
		return snapshot.New(cfg.SnapshotDir)
	}
	c := backend.New(cfg.BaseURL, cfg.Timeout).WithLogger(log)
	c.Retry.MaxAttempts = cfg.MaxAttempts
	return c
}

// NewLoader builds a catalog loader from cfg.
func NewLoader(cfg *config.Config, log *slog.Logger) (*catalog.Loader, error) {
	table, err := query.LoadTable(cfg.Catalog.TablesPath)
	if err != nil {
		return nil, err
	}
	legacy := cfg.Catalog.LegacyFieldKeys
	if legacy == nil {
		legacy = taxonomy.DefaultLegacyFieldKeys
	}
	return &catalog.Loader{
		Source:         NewSource(cfg.Upstream, log),
		Normalizer:     taxonomy.Normalizer{LegacyFieldKeys: legacy},
		Table:          table,
		Workers:        cfg.Catalog.Workers,
		IndexCacheSize: cfg.Catalog.IndexCacheSize,
		DeriveCareers:  cfg.Catalog.DeriveCareers,
		Log:            log,
	}, nil
}

// LoadCatalog loads one catalog with the configured timeout.
func LoadCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) (*catalog.Catalog, error) {
	loader, err := NewLoader(cfg, log)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
	defer cancel()
	return loader.Load(ctx)
}

// Run serves the REST API until ctx is canceled. The first catalog load
// failing is logged, not fatal: /ready stays 503 until a refresh succeeds.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)

	logger.Info("starting course explorer",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	loader, err := NewLoader(cfg, logger)
	if err != nil {
		return err
	}
	svc := catalog.NewService(loader, logger)
	svc.RefreshTimeout = cfg.Catalog.LoadTimeout
	svc.RetryInterval = cfg.Catalog.RetryInterval

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
	if err := svc.Refresh(loadCtx); err != nil {
		logger.Error("initial catalog load failed", slog.String("error", err.Error()))
	}
	cancel()

	go svc.Run(ctx, cfg.Catalog.RefreshInterval)

	handler := rest.NewRouter(
		rest.NewHandler(svc, logger),
		rest.NewHealthHandler(svc, BuildVersion()),
		middleware.Chain(
			middleware.RequestID,
			middleware.Logger(logger),
			middleware.Recovery(logger),
			middleware.CORS(cfg.CORS),
		),
	)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout(cfg.Server.ShutdownTimeout))
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func shutdownTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}

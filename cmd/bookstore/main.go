// cmd/bookstore/main.go
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/internal/cart"
	"bookstore/internal/catalog"
	"bookstore/internal/config"
	"bookstore/internal/favorites"
	"bookstore/internal/httpapi"
	"bookstore/internal/orders"
	"bookstore/internal/storage"
	"bookstore/internal/telemetry"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logger := newLogger(config.LogConfig{Level: "info"}, "bookstore")
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}
	logger := newLogger(cfg.Log, cfg.Telemetry.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to set up tracing")
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("trace flush failed")
		}
	}()

	db, err := storage.Open(ctx, storage.Options{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	defer db.Close()

	if err := storage.Migrate(ctx, db); err != nil {
		logger.Error().Err(err).Msg("failed to apply schema")
		return err
	}

	books := catalog.NewService(db, logger)
	deps := httpapi.Deps{
		Catalog:   books,
		Cart:      cart.NewService(cart.NewPostgresRepository(db), logger),
		Favorites: favorites.NewService(favorites.NewPostgresRepository(db), logger),
		Orders:    orders.NewService(books, orders.NewPostgresRepository(db), logger),
		DB:        db,
		Logger:    logger,
	}
	if cfg.RateLimit.RPS > 0 {
		deps.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpapi.NewRouter(deps),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting bookstore service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server failed")
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}

func newLogger(cfg config.LogConfig, service string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", service).Logger()
}

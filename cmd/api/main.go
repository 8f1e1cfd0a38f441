package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwtauth "medicine-tracker/internal/adapters/auth/jwt"
	mem "medicine-tracker/internal/adapters/storage/memory"
	pg "medicine-tracker/internal/adapters/storage/postgres"
	"medicine-tracker/internal/adapters/storage/sqlite"
	"medicine-tracker/internal/config"
	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/platform/metrics"
	"medicine-tracker/internal/platform/ratelimit"
	"medicine-tracker/internal/ports/auth"
	"medicine-tracker/internal/router"
)

type backend interface {
	router.Backend
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, App: cfg.AppName})
	err = run(cfg, log)
	if err != nil {
		log.Error("server stopped", map[string]any{"error": err.Error()})
	}
	if zl, ok := log.(*logger.ZapLogger); ok {
		_ = zl.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

// run levanta el servidor y bloquea hasta una señal o un error; los recursos
// se liberan con defer antes de volver.
func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("storage init (%s): %w", cfg.DBDriver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("storage close failed", map[string]any{"error": err.Error()})
		}
	}()

	// sin verifier = modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if !cfg.DevAuth() {
		verifier = jwtauth.NewVerifier(cfg.JWTSecret)
	} else {
		log.Warn("JWT_SECRET not set, accepting X-Debug-User-ID header", nil)
	}

	var limiter *ratelimit.KeyedLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)
		defer limiter.Stop()
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:       verifier,
		Backend:            store,
		Logger:             log,
		Metrics:            metrics.New("medicine_tracker"),
		RateLimiter:        limiter,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:        cfg.Environment,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr(), "driver": string(cfg.DBDriver), "env": cfg.Environment})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func openBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (backend, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		st, err := pg.OpenStore(ctx, cfg.DBDSN, log)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.DriverSQLite:
		st, err := sqlite.OpenStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return mem.NewStore(), nil
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"staffdesk/internal/domain/audit"
	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/staff"
	"staffdesk/internal/platform/config"
	"staffdesk/internal/platform/db"
	"staffdesk/internal/platform/jobs"
	"staffdesk/internal/platform/kv"
	"staffdesk/internal/platform/logger"
	"staffdesk/internal/platform/metrics"
)

type App struct {
	Config   config.Config
	Router   http.Handler
	Store    *staff.Store
	Gate     *auth.Gate
	Sessions kv.Store
	Jobs     *jobs.Service
	Metrics  *metrics.Collector
	Registry *prometheus.Registry

	closers []func()
}

// New wires every component for cfg. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &App{Config: cfg, Registry: prometheus.NewRegistry()}
	if cfg.MetricsEnabled {
		app.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		app.Metrics = metrics.New(app.Registry)
	}

	sessions, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Sessions = sessions
	app.closers = append(app.closers, closeSessions)

	seed, err := staff.LoadSeed(cfg.SeedFile)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load seed: %w", err)
	}
	recordAudit := audit.New(slog.Default()).EmployeeObserver()
	app.Store, err = staff.NewStore(seed, staff.WithObserver(func(op string, e staff.Employee) {
		app.Metrics.RecordMutation(op)
		recordAudit(op, e)
	}))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("build employee store: %w", err)
	}

	app.Gate, err = auth.NewGate(ctx, sessions, auth.WithStateObserver(app.Metrics.SetSessionActive))
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Jobs = jobs.New()
	if err := app.Jobs.Schedule(jobs.JobStatsRefresh, cfg.StatsRefreshSchedule, jobs.StatsRefresh(app.Store, app.Metrics)); err != nil {
		app.Close()
		return nil, err
	}
	if _, err := app.Jobs.RunNow(ctx, jobs.JobStatsRefresh); err != nil {
		slog.Warn("initial stats refresh failed", "err", err)
	}
	app.Jobs.Start(context.WithoutCancel(ctx))
	app.closers = append(app.closers, app.Jobs.Stop)

	app.Router = app.routes()

	slog.Info("staffdesk initialised",
		"employees", app.Store.Len(),
		"sessionBackend", cfg.SessionBackend,
		"authenticated", app.Gate.IsAuthenticated(),
	)
	return app, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func openSessionStore(ctx context.Context, cfg config.Config) (kv.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client := kv.NewRedisClient(kv.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := kv.NewRedis(client, cfg.SessionNamespace)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis session store: %w", err)
		}
		return store, func() {
			if err := client.Close(); err != nil {
				slog.Warn("redis close failed", "err", err)
			}
		}, nil

	case config.SessionBackendPostgres:
		if cfg.RunMigrations {
			if err := db.Migrate(cfg.DatabaseURL); err != nil {
				return nil, nil, fmt.Errorf("migrations failed: %w", err)
			}
		}
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect failed: %w", err)
		}
		return kv.NewPostgres(pool, cfg.SessionNamespace), pool.Close, nil
	}

	return kv.NewMemory(), func() {}, nil
}

// Run loads configuration from the environment and serves until SIGINT or SIGTERM.
func Run() {
	cfg := config.Load()
	logger.SetupDefault(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("staffdesk listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed", "err", err)
		}
		slog.Info("staffdesk stopped")
	}
}

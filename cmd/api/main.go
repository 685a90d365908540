// Package main is the entry point for the Trip Mapper API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/tdnguyen/tripmapper/backend/internal/config"
	"github.com/tdnguyen/tripmapper/backend/internal/directions"
	"github.com/tdnguyen/tripmapper/backend/internal/handler"
	"github.com/tdnguyen/tripmapper/backend/internal/metrics"
	"github.com/tdnguyen/tripmapper/backend/internal/middleware"
	"github.com/tdnguyen/tripmapper/backend/internal/planner"
	"github.com/tdnguyen/tripmapper/backend/internal/repo"
	"github.com/tdnguyen/tripmapper/backend/internal/service"
	"github.com/tdnguyen/tripmapper/backend/migrations"
)

// maxBodyBytes caps incoming request bodies. The largest legitimate payload
// is a location with notes, far below this.
const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	// --- Config -----------------------------------------------------------
	// .env is optional and development-only; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// Migrations are embedded in the binary and applied at boot, so a deploy
	// is a single artifact with no separate migration step.
	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations up to date")

	// --- Dependencies -----------------------------------------------------
	collector := metrics.NewCollector()

	tripRepo := repo.NewTripRepo(pool)
	locationRepo := repo.NewLocationRepo(pool)

	provider := directions.NewClient(cfg.DirectionsURL, cfg.DirectionsProfile)
	resolver := planner.NewResolver(provider, cfg.ResolverDelay, collector)
	tripPlanner := planner.New(tripRepo, locationRepo, resolver, collector, logger)
	defer tripPlanner.Close()

	tripService := service.NewTripService(tripRepo, tripPlanner)
	locationService := service.NewLocationService(tripRepo, locationRepo, tripPlanner)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit. Recoverer catches panics and returns HTTP 500
	// instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Method(http.MethodGet, "/metrics", collector.Handler())

	srvHandlers := handler.NewServer(tripService, locationService, tripPlanner, logger)
	r.Mount("/", srvHandlers.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // a long resolver queue can delay timeline reads
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending migrations from the embedded filesystem.
// goose needs database/sql, so it gets its own short-lived connection.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/eventcal/eventcal-go/internal/cache"
	"github.com/eventcal/eventcal-go/internal/config"
	"github.com/eventcal/eventcal-go/internal/geoip"
	"github.com/eventcal/eventcal-go/internal/handler/api"
	"github.com/eventcal/eventcal-go/internal/logging"
	"github.com/eventcal/eventcal-go/internal/middleware"
	"github.com/eventcal/eventcal-go/internal/recommend"
	"github.com/eventcal/eventcal-go/internal/scheduler"
	"github.com/eventcal/eventcal-go/internal/store"
	"github.com/eventcal/eventcal-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "eventcal - Marketing Event Calendar\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTCAL_DB_PATH         SQLite database path (default: ./data/eventcal.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTCAL_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTCAL_ENV             Environment: development|production|test (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTCAL_AI_API_KEY      API key for the recommendation provider (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTCAL_AI_BASE_URL     OpenAI-compatible endpoint (default: DeepSeek)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTCAL_REDIS_URL       Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTCAL_GEOIP_DB_PATH   Path to GeoLite2-Country.mmdb (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTCAL_DO_SEED         Seed reference data on first start (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("eventcal %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the audit log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	auditHandler := logging.NewAuditHandler(textHandler, db)
	logger = slog.New(auditHandler)
	slog.SetDefault(logger)
	slog.Info("audit log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Cache: Redis when configured, in-process memory otherwise
	appCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	// GeoIP region detection (optional)
	geo := geoip.NewLookup()
	if err := geo.Init(cfg.GeoIPDBPath); err != nil {
		slog.Warn("geoip initialization failed, region detection disabled", "error", err)
	}
	defer func() {
		_ = geo.Close()
	}()

	// Recommendation generator; without an API key it serves fallbacks
	generator := recommend.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	if cfg.AIEnabled() {
		slog.Info("recommendation provider configured", "base_url", cfg.AIBaseURL, "model", cfg.AIModel)
	} else {
		slog.Info("no recommendation provider configured, using fallback generation")
	}

	// Background jobs: recurring holiday materialization, GeoIP reload
	sched := scheduler.New(db, geo, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
	h := api.NewHandler(db, generator, geo, appCache, versionInfo)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	rateLimiter := middleware.NewRateLimiter(10, 20)
	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Middleware())

		r.Get("/status", h.Status)

		r.Get("/regions", h.ListRegions)
		r.Get("/regions/detect", h.DetectRegion)
		r.Get("/event-types", h.ListEventTypes)

		r.Get("/events", h.ListEvents)
		r.Post("/events", h.CreateEvent)
		r.Get("/events/{id}", h.GetEvent)
		r.Put("/events/{id}", h.UpdateEvent)
		r.Delete("/events/{id}", h.DeleteEvent)

		r.Get("/holidays", h.ListHolidays)
		r.Post("/holidays", h.CreateHoliday)

		r.Get("/recommendations", h.ListRecommendations)
		r.Post("/recommendations/generate", h.GenerateRecommendations)
		r.Put("/recommendations/{id}/accept", h.AcceptRecommendation)
		r.Put("/recommendations/{id}/reject", h.RejectRecommendation)
		r.Delete("/recommendations/{id}", h.DeleteRecommendation)

		r.Get("/calendar/{year}/{month}", h.GetCalendarGrid)
		r.Get("/lunar/holidays/{year}", h.ListLunarHolidays)
		r.Get("/lunar/{date}", h.GetLunarDate)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

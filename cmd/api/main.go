// Package main is the entrypoint for the GlowTrack web server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/glowtrack/glowtrack/internal/cache"
	"github.com/glowtrack/glowtrack/internal/config"
	"github.com/glowtrack/glowtrack/internal/handler"
	"github.com/glowtrack/glowtrack/internal/metrics"
	"github.com/glowtrack/glowtrack/internal/middleware"
	"github.com/glowtrack/glowtrack/internal/repository"
	"github.com/glowtrack/glowtrack/internal/server"
	"github.com/glowtrack/glowtrack/internal/service"
	"github.com/glowtrack/glowtrack/internal/session"
	"github.com/glowtrack/glowtrack/internal/storage"
	"github.com/glowtrack/glowtrack/internal/web"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize store. Without DATABASE_URL (development only) the app runs
	// on the in-memory adapter and loses everything on restart.
	var store repository.Store
	if cfg.DatabaseURL != "" {
		pg, err := repository.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		store = pg
		logger.Info("connected to database")
	} else {
		store = repository.NewMemory()
		logger.Warn("DATABASE_URL not set, using in-memory store")
	}

	// Initialize Redis-backed sessions, falling back to in-memory alongside
	// the in-memory store.
	var (
		cacheClient *cache.Cache
		sessions    session.Manager
	)
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		sessions = session.NewRedisManager(cacheClient, cfg.SessionTTL)
		logger.Info("connected to Redis")
	} else {
		sessions = session.NewMemoryManager()
		logger.Warn("REDIS_URL not set, using in-memory sessions")
	}

	// Initialize the selfie blob store
	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize blob store",
			slog.String("backend", cfg.StorageBackend),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Initialize metrics
	recorder := metrics.NewPrometheus()

	// Initialize views
	views, err := web.New(logger)
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize handlers
	h := handler.New(handler.Config{
		Logger:      logger,
		Views:       views,
		Sessions:    sessions,
		Auth:        service.NewAuthService(store, recorder),
		Routines:    service.NewRoutineService(store, recorder),
		Completions: service.NewCompletionService(store, recorder),
		Reminders:   service.NewReminderService(store, recorder),
		Selfies:     service.NewSelfieService(store, blobs, recorder),
	})

	var cacheChecker handler.HealthChecker
	if cacheClient != nil {
		cacheChecker = cacheClient
	}
	healthHandler := handler.NewHealthHandler(store, cacheChecker)

	// Setup router
	r := setupRouter(h, healthHandler, recorder, sessions, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("store", func(context.Context) error {
		store.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("cache", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
		"storage_backend", cfg.StorageBackend,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newBlobStore builds the configured selfie storage backend.
func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3(ctx, storage.S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		})
	}
	return storage.NewLocal(cfg.UploadDir)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	recorder *metrics.PrometheusRecorder,
	sessions session.Manager,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health and metrics endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Method("GET", "/metrics", recorder.Handler())

	// Public pages
	r.Get("/", h.Index)
	r.Get("/signup", h.SignupForm)
	r.Post("/signup", h.Signup)
	r.Get("/signin", h.SigninForm)

	signinLimit := middleware.SigninRateLimit(middleware.RateLimitConfig{
		Logger:   logger,
		Cache:    cacheClient,
		Enabled:  cfg.SigninRateLimitEnabled && cacheClient != nil,
		Attempts: cfg.SigninRateLimitAttempts,
		Window:   cfg.SigninRateLimitWindow,
	})
	r.With(signinLimit).Post("/signin", h.Signin)

	// Signed-in pages
	guard := middleware.RequireSession(middleware.SessionConfig{
		Logger:   logger,
		Sessions: sessions,
	})
	r.Group(func(r chi.Router) {
		r.Use(guard)

		r.Get("/logout", h.Logout)
		r.Get("/dashboard", h.Dashboard)

		r.Get("/routine", h.RoutinePage)
		r.Post("/routine", h.AddStep)
		r.Post("/routine/delete/{stepID}", h.DeleteStep)
		r.Post("/routine/mark-done", h.MarkDone)

		r.Get("/selfie", h.SelfieForm)
		r.Post("/selfie", h.SelfieUpload)
		r.Get("/selfie/result/{filename}", h.SelfieResult)
		r.Get("/uploads/{filename}", h.ServeUpload)

		r.Get("/streak", h.StreakPage)
		r.Get("/insights", h.InsightsPage)

		r.Get("/reminders", h.RemindersPage)
		r.Post("/reminders", h.AddReminder)
		r.Post("/reminders/delete/{reminderID}", h.DeleteReminder)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

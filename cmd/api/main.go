package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	_ "book-journal/docs" // swagger docs
	"book-journal/internal/common/pagination"
	"book-journal/internal/config"
	hhttp "book-journal/internal/handler/http"
	hbook "book-journal/internal/handler/http/book"
	"book-journal/internal/handler/http/middleware"
	hpost "book-journal/internal/handler/http/post"
	hprofile "book-journal/internal/handler/http/profile"
	"book-journal/internal/handler/http/requestid"
	"book-journal/internal/handler/http/viewer"
	pgRepo "book-journal/internal/infra/adapter/persistence/postgres"
	"book-journal/internal/infra/db"
	"book-journal/internal/observability/logging"
	"book-journal/internal/observability/tracing"
	"book-journal/internal/resilience/circuitbreaker"
	bookUC "book-journal/internal/usecase/book"
	postUC "book-journal/internal/usecase/post"
	profileUC "book-journal/internal/usecase/profile"
	envconfig "book-journal/pkg/config"
)

// @title           Book Journal API
// @version         1.0
// @description     Reading journal REST API: posts about books, the book catalogue and reader profiles, with cursor-paginated listings.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @description UUID of the authenticated reader, set by the gateway.

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load server configuration", slog.Any("error", err))
		os.Exit(1)
	}
	listings, err := config.LoadListingConfig(cfg.ListingConfigPath)
	if err != nil {
		logger.Error("failed to load listing configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := initTracing(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	stop := make(chan struct{})
	handler := setupServer(logger, cfg, listings, database, stop)
	runServer(logger, cfg, handler)
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracer provider shutdown failed", slog.Any("error", err))
	}
}

// initTracing installs an SDK tracer provider when TRACING_ENABLED is set so
// request logs carry real trace ids. No exporter is attached; spans are
// sampled and dropped unless a collector is wired in later.
func initTracing(logger *slog.Logger) func(context.Context) error {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	if !envconfig.GetEnvBool("TRACING_ENABLED", false) {
		return func(context.Context) error { return nil }
	}

	ratio := float64(envconfig.GetEnvInt("TRACING_SAMPLE_PERCENT", 100)) / 100
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)
	logger.Info("tracing enabled", slog.Float64("sample_ratio", ratio))
	return tp.Shutdown
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupServer builds the services, registers routes and wraps the mux in the
// middleware chain. Background work started here ends when stop is closed.
func setupServer(logger *slog.Logger, cfg *config.ServerConfig, listings *config.ListingFile, database *sql.DB, stop <-chan struct{}) http.Handler {
	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	store := pgRepo.NewStore(breaker)

	base := postListing()
	postSvc := &postUC.Service{Repos: store.Repos(), Tx: store, Listing: base, Logger: logger}
	bookSvc := &bookUC.Service{Repo: store.Repos().Books}
	profileSvc := &profileUC.Service{Users: store.Repos().Users, Profiles: store.Repos().Profiles, Logger: logger}

	mux := http.NewServeMux()
	hpost.Register(mux, postSvc, base, listings, logger)
	hbook.Register(mux, bookSvc)
	hprofile.Register(mux, profileSvc)

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Breaker: breaker, Version: cfg.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: breaker})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins...)
	corsConfig.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Bool("production", cfg.IsProduction()))

	chain := []hhttp.Middleware{
		requestid.Middleware,
		hhttp.Recover(logger),
		tracing.Middleware,
		hhttp.Metrics(),
		hhttp.Logging(logger),
		middleware.CORS(corsConfig),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
		hhttp.Timeout(cfg.RequestTimeout),
		viewer.Middleware,
	}

	limitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: float64(cfg.RateLimitRPS),
		Burst:             cfg.RateLimitBurst,
		Logger:            logger,
	}
	if limitCfg.Enabled() {
		limiter := middleware.NewRateLimiter(limitCfg)
		limiter.StartCleanup(time.Minute, stop)
		chain = append(chain, middleware.RateLimit(limiter))
		logger.Info("rate limiting enabled",
			slog.Int("rps", cfg.RateLimitRPS),
			slog.Int("burst", cfg.RateLimitBurst))
	}

	return hhttp.Chain(tracing.Route(mux), chain...)
}

// postListing starts from the post defaults (newest reading first) and takes
// page sizes and an explicit PAGINATION_DEFAULT_ORDER from the environment.
// Listing file overrides are applied per route and can only narrow these.
func postListing() pagination.Config {
	env := pagination.LoadFromEnv()
	cfg := postUC.DefaultListing()
	cfg.DefaultTake, cfg.MaxTake = env.DefaultTake, env.MaxTake
	return cfg.WithDefaultOrder(envconfig.GetEnvStringList("PAGINATION_DEFAULT_ORDER", nil))
}

// runServer serves until SIGINT or SIGTERM and then drains in-flight requests.
func runServer(logger *slog.Logger, cfg *config.ServerConfig, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version),
			slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}

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

	_ "time/tzdata"

	"github.com/SscSPs/kontrollavgift/internal/adapters/identity"
	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/core/services"
	"github.com/SscSPs/kontrollavgift/internal/handlers"
	"github.com/SscSPs/kontrollavgift/internal/middleware"
	"github.com/SscSPs/kontrollavgift/internal/platform/config"
	"github.com/SscSPs/kontrollavgift/internal/platform/metrics"
	"github.com/SscSPs/kontrollavgift/internal/repositories/database/pgsql"
	"github.com/SscSPs/kontrollavgift/internal/repositories/memory"
	redisstore "github.com/SscSPs/kontrollavgift/internal/repositories/redis"
	"github.com/SscSPs/kontrollavgift/internal/utils"
	"github.com/SscSPs/kontrollavgift/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Kontrollavgift Backend API
// @version 1.0
// @description Issuing, listing and printing of parking control fees.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.MigrateUp(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	revocations, closeRevocations, err := newRevocationStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize revocation store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRevocations()

	passwords, err := newPasswordAuthenticator(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize identity provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	repos := pgsql.NewRepositoryProvider(dbPool, revocations)
	servicesContainer, err := services.NewServiceContainer(cfg, repos, passwords, appMetrics)
	if err != nil {
		logger.Error("Failed to initialize services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(appMetrics),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendBaseURL},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	if err := handlers.RegisterRoutes(r, cfg, servicesContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// newRevocationStore uses Redis when REDIS_URL is set, otherwise a process-local store.
func newRevocationStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.SessionRevocationRepository, func(), error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, session revocations are kept in memory")
		return memory.NewRevocationStore(), func() {}, nil
	}
	client, err := redisstore.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return redisstore.NewRevocationStore(client), func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}, nil
}

// newPasswordAuthenticator returns nil for the local provider, which the
// service container resolves to the bcrypt authenticator.
func newPasswordAuthenticator(ctx context.Context, cfg *config.Config) (portssvc.PasswordAuthenticator, error) {
	if cfg.IdentityProvider != config.IdentityProviderFirebase {
		return nil, nil
	}
	auth, err := identity.NewFirebasePasswordAuthenticator(ctx, cfg.StoreAPIKey, cfg.StoreProjectID)
	if err != nil {
		return nil, err
	}
	return auth, nil
}

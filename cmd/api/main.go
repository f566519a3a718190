package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lumoworks/licensing-backend/api/middleware"
	"github.com/lumoworks/licensing-backend/api/routes"
	"github.com/lumoworks/licensing-backend/internal/audit"
	"github.com/lumoworks/licensing-backend/internal/entitlement"
	"github.com/lumoworks/licensing-backend/internal/projects"
	"github.com/lumoworks/licensing-backend/internal/subscriptions"
	"github.com/lumoworks/licensing-backend/internal/users"
	"github.com/lumoworks/licensing-backend/pkg/config"
	"github.com/lumoworks/licensing-backend/pkg/db"
	"github.com/lumoworks/licensing-backend/pkg/logger"
	"github.com/lumoworks/licensing-backend/pkg/metrics"
	"github.com/lumoworks/licensing-backend/pkg/migrate"
	"github.com/lumoworks/licensing-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	entitlementMetrics := metrics.NewEntitlementMetrics(prometheus.DefaultRegisterer)

	auditRepo := audit.NewRepository(dbClient.DB())
	recorder, err := entitlement.NewRecorder(cfg.Audit, auditRepo, logg, entitlementMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit recorder", err)
		os.Exit(1)
	}
	defer recorder.Close()

	resolver, err := entitlement.NewResolver(
		users.NewRepository(dbClient.DB()),
		subscriptions.NewRepository(dbClient.DB()),
		cfg.Entitlement,
		logg,
		entitlementMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create license resolver", err)
		os.Exit(1)
	}

	projectsRepo := projects.NewRepository(dbClient.DB())
	quotas, err := entitlement.NewQuotaEnforcer(projectsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create quota enforcer", err)
		os.Exit(1)
	}

	projectsService, err := projects.NewService(projectsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create projects service", err)
		os.Exit(1)
	}

	auditService, err := audit.NewService(auditRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit service", err)
		os.Exit(1)
	}

	guard := middleware.Guard{
		Recorder:   recorder,
		Metrics:    entitlementMetrics,
		Violations: redisClient,
		Logger:     logg,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Resolver: resolver,
			Quotas:   quotas,
			Recorder: recorder,
			Guard:    guard,
			Projects: projectsService,
			Audit:    auditService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

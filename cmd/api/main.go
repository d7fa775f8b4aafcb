package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/gestion-backend/api/middleware"
	"github.com/angelmondragon/gestion-backend/api/routes"
	"github.com/angelmondragon/gestion-backend/internal/catalog"
	"github.com/angelmondragon/gestion-backend/internal/inventory"
	"github.com/angelmondragon/gestion-backend/internal/sales"
	"github.com/angelmondragon/gestion-backend/internal/supplierorders"
	"github.com/angelmondragon/gestion-backend/pkg/config"
	"github.com/angelmondragon/gestion-backend/pkg/db"
	"github.com/angelmondragon/gestion-backend/pkg/logger"
	"github.com/angelmondragon/gestion-backend/pkg/metrics"
	"github.com/angelmondragon/gestion-backend/pkg/migrate"
	"github.com/angelmondragon/gestion-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	middleware.SetupPropagation()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(runCtx, cfg.DB, logg)
	if err != nil {
		logg.Error(runCtx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(runCtx, cfg, logg, dbClient); err != nil {
		logg.Error(runCtx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(runCtx, cfg.Redis, logg)
	if err != nil {
		logg.Error(runCtx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	salesMetrics := metrics.NewSalesMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	inventoryRepo := inventory.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	inventoryService, err := inventory.NewService(inventoryRepo)
	if err != nil {
		logg.Error(runCtx, "failed to create inventory service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, cfg.Sales.SearchLimit)
	if err != nil {
		logg.Error(runCtx, "failed to create catalog service", err)
		os.Exit(1)
	}

	zoneResolver, err := sales.NewZoneResolver(inventoryRepo, cfg.Sales.ZoneID)
	if err != nil {
		logg.Error(runCtx, "failed to create sales zone resolver", err)
		os.Exit(1)
	}

	salesService, err := sales.NewService(
		dbClient,
		catalogRepo,
		inventoryRepo,
		sales.NewRepository(dbClient.DB()),
		zoneResolver,
		salesMetrics,
		logg,
	)
	if err != nil {
		logg.Error(runCtx, "failed to create sales service", err)
		os.Exit(1)
	}

	supplierOrderService, err := supplierorders.NewService(
		dbClient,
		supplierorders.NewRepository(dbClient.DB()),
		catalogRepo,
		salesMetrics,
		logg,
	)
	if err != nil {
		logg.Error(runCtx, "failed to create supplier order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"sales_zone":   cfg.Sales.ZoneID,
		"db_driver":    cfg.DB.Driver,
		"search_limit": cfg.Sales.SearchLimit,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			redisClient,
			registry,
			httpMetrics,
			inventoryService,
			catalogService,
			salesService,
			supplierOrderService,
		),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

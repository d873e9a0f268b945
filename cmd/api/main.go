package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go-price-checker/internal/config"
	"go-price-checker/internal/handler"
	"go-price-checker/internal/metrics"
	"go-price-checker/internal/repository"
	"go-price-checker/internal/service"
	"go-price-checker/internal/source"
	"go-price-checker/internal/ws"
	"go-price-checker/pkg/cache"
	"go-price-checker/pkg/database"
	"go-price-checker/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// 1. Load Env
	envErr := godotenv.Load()
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)
	if envErr != nil {
		slog.Info(".env file not found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// 3. WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Catalog snapshot
	var snapshot cache.Snapshot
	if cfg.RedisAddr != "" {
		redisSnapshot, err := cache.NewRedisSnapshot(cfg.RedisAddr, cfg.RedisPassword, cfg.SnapshotKey)
		if err != nil {
			slog.Warn("catalog snapshot disabled", "error", err)
		} else {
			defer redisSnapshot.Close()
			snapshot = redisSnapshot
		}
	}

	// 5. Sync source
	src, live := buildSource(cfg)

	// 6. Dependency Injection (Wiring Layers)
	store := repository.NewProductStore()
	history := repository.NewImportHistory(repository.DefaultHistorySize)

	catalogService := service.NewCatalogService(store, live, m)
	uploadService := service.NewUploadService(store, history, snapshot, wsHub, m)
	syncService := service.NewSyncService(src, store, snapshot, wsHub, m, cfg.SyncInterval)

	if err := syncService.Bootstrap(ctx); err != nil {
		slog.Warn("starting with an empty catalog", "error", err)
	}
	go syncService.Run(ctx)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "Price Checker v1.0",
		BodyLimit:    cfg.MaxUploadSize,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	handler.SetupRoutes(app, handler.Handlers{
		System:   handler.NewSystemHandler(catalogService),
		Product:  handler.NewProductHandler(catalogService, syncService),
		Upload:   handler.NewUploadHandler(uploadService, cfg.UploadDir),
		Hub:      wsHub,
		Gatherer: registry,
	})

	// 8. Graceful Shutdown
	go func() {
		slog.Info("server listening", "port", cfg.Port, "products", store.Count())
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}

// buildSource picks the sync connector. The warehouse also serves live
// lookups for barcodes missing from the in-memory catalog.
func buildSource(cfg config.Config) (source.Source, service.LiveLookup) {
	switch cfg.SyncSource {
	case config.SyncSourceCSV:
		if cfg.CSVSourceURL == "" {
			slog.Warn("SYNC_SOURCE=csv but no CSV_SOURCE_URL or GitHub repo configured")
			return nil, nil
		}
		return source.NewCSVSource(cfg.CSVSourceURL, cfg.GitHubToken), nil

	case config.SyncSourceWarehouse:
		if !cfg.Warehouse.Configured() {
			slog.Warn("SYNC_SOURCE=warehouse but no database configured")
			return nil, nil
		}
		db, err := database.ConnectDB(cfg.Warehouse)
		if err != nil {
			slog.Error("warehouse connection failed", "error", err)
			return nil, nil
		}
		wh, err := source.NewWarehouseSource(db, cfg.WarehouseProductsTable, cfg.WarehouseInventoryTable)
		if err != nil {
			slog.Error("warehouse source disabled", "error", err)
			return nil, nil
		}
		return wh, wh

	case config.SyncSourceNone:
		return nil, nil

	default:
		slog.Warn("unknown SYNC_SOURCE, catalog will only change through uploads", "source", cfg.SyncSource)
		return nil, nil
	}
}

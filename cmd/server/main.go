package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tectle/backend/internal/application/dashboard"
	"github.com/tectle/backend/internal/application/importing"
	"github.com/tectle/backend/internal/domain/orders"
	"github.com/tectle/backend/internal/infrastructure/config"
	"github.com/tectle/backend/internal/infrastructure/importers"
	"github.com/tectle/backend/internal/infrastructure/logger"
	"github.com/tectle/backend/internal/infrastructure/sampledata"
	"github.com/tectle/backend/internal/interfaces/http/handler"
	"github.com/tectle/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Tectle Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Wire the import service with the built-in platform adapters
	service := importing.NewService(log.Named("importing"),
		importers.NewEtsyImporter(),
		importers.NewShopifyImporter(),
	)
	state := dashboard.NewState()

	if err := seed(cfg, log, service, state); err != nil {
		log.Fatal("Failed to seed orders", zap.Error(err))
	}

	engine := router.New(cfg, log, router.Handlers{
		System: handler.NewSystemHandler(cfg.App.Name),
		Orders: handler.NewOrdersHandler(service, state),
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// seed loads the bundled sample payloads and the optional startup data file
// into the order view.
func seed(cfg *config.Config, log *zap.Logger, service *importing.Service, state *dashboard.State) error {
	load := func(source string, batches map[string][]orders.RawPayload) error {
		result, err := service.ImportAll(context.Background(), batches)
		if err != nil {
			return err
		}
		state.Upsert(result.Orders)
		log.Info("Seeded orders",
			zap.String("source", source),
			zap.Int("orders", len(result.Orders)),
			zap.Int("failures", len(result.Failures)))
		return nil
	}

	if cfg.Import.SeedSampleData {
		batches, err := sampledata.Batches()
		if err != nil {
			return err
		}
		if err := load("sample", batches); err != nil {
			return err
		}
	}

	if cfg.Import.DataFile != "" {
		batches, err := sampledata.BatchesFromFile(cfg.Import.DataFile)
		if err != nil {
			return err
		}
		if err := load(cfg.Import.DataFile, batches); err != nil {
			return err
		}
	}

	return nil
}

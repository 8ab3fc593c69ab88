package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"partshop/internal/auth"
	"partshop/internal/cache"
	"partshop/internal/catalog"
	"partshop/internal/config"
	"partshop/internal/database"
	"partshop/internal/events"
	"partshop/internal/handler"
	"partshop/internal/repository"
	"partshop/internal/router"
	"partshop/internal/service"
	"partshop/internal/telemetry"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting partshop API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		shutdownTracing, err := telemetry.Setup(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			if err := shutdownTracing(flushCtx); err != nil {
				logger.Error().Err(err).Msg("failed to flush traces")
			}
		}()
		logger.Info().Str("endpoint", cfg.Tracing.JaegerEndpoint).Msg("tracing enabled")
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize repositories
	partRepo := repository.NewPartRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	outboxRepo := repository.NewOutboxRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	employeeRepo := repository.NewEmployeeRepository(pool, logger)
	storeRepo := repository.NewStoreRepository(pool, logger)
	inventoryRepo := repository.NewInventoryRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)
	returnRepo := repository.NewReturnRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	if len(cfg.Catalog.Feeds) > 0 {
		if err := importCatalog(ctx, cfg, partRepo, logger); err != nil {
			return err
		}
	}

	// The part cache is optional; a nil PartCache reads straight from the store.
	var partCache service.PartCache
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, part cache disabled")
		} else {
			defer client.Close()
			partCache = cache.NewPartCache(client, cfg.Redis.TTL, logger)
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("part cache enabled")
		}
	}

	var workers sync.WaitGroup
	defer workers.Wait()
	// Stop background workers before waiting on them.
	defer cancel()

	if cfg.Events.Enabled {
		broker, err := events.Dial(cfg.Events.RabbitMQURL, cfg.Events.Exchange, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		defer func() {
			if err := broker.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
			}
		}()

		worker := events.NewWorker(outboxRepo, broker, events.WorkerConfig{
			PollInterval: cfg.Events.PollInterval,
			BatchSize:    cfg.Events.BatchSize,
		}, logger)
		workers.Add(1)
		go func() {
			defer workers.Done()
			worker.Run(ctx)
		}()
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, cartRepo, outboxRepo, service.OrderOptions{
		TxTimeout:     cfg.Order.TxTimeout,
		PublishEvents: cfg.Events.Enabled,
	}, logger)
	partService := service.NewPartService(partRepo, partCache, logger)
	cartService := service.NewCartService(cartRepo, logger)
	authService := service.NewAuthService(customerRepo, employeeRepo, tokens, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	employeeService := service.NewEmployeeService(employeeRepo, logger)
	storeService := service.NewStoreService(storeRepo, logger)
	inventoryService := service.NewInventoryService(inventoryRepo, logger)
	paymentService := service.NewPaymentService(paymentRepo, logger)
	returnService := service.NewReturnService(returnRepo, orderRepo, logger)
	reportService := service.NewReportService(reportRepo, logger)

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Auth:      handler.NewAuthHandler(authService, logger),
		Parts:     handler.NewPartHandler(partService, logger),
		Cart:      handler.NewCartHandler(cartService, logger),
		Orders:    handler.NewOrderHandler(orderService, logger),
		Customers: handler.NewCustomerHandler(customerService, logger),
		Employees: handler.NewEmployeeHandler(employeeService, logger),
		Stores:    handler.NewStoreHandler(storeService, logger),
		Inventory: handler.NewInventoryHandler(inventoryService, logger),
		Payments:  handler.NewPaymentHandler(paymentService, logger),
		Returns:   handler.NewReturnHandler(returnService, logger),
		Reports:   handler.NewReportHandler(reportService, logger),
	}, tokens, router.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Tracing:        cfg.Tracing.Enabled,
		ServiceName:    cfg.Tracing.ServiceName,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// importCatalog upserts the configured supplier feeds, reading from S3 when
// enabled and from the local file system otherwise.
func importCatalog(ctx context.Context, cfg *config.Config, store catalog.Store, logger zerolog.Logger) error {
	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		loader, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for catalog feeds (S3 disabled)")
	}

	loader := catalog.NewFallbackLoader(s3Loader, catalog.NewFileLoader(logger), cfg.S3.Prefix, logger)
	if _, err := catalog.NewImporter(loader, store, logger).Import(ctx, cfg.Catalog.Feeds); err != nil {
		return fmt.Errorf("failed to import catalog feeds: %w", err)
	}
	return nil
}

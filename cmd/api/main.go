package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/VijayBuddhi/phase-zero-project/internal/config"
	"github.com/VijayBuddhi/phase-zero-project/internal/database"
	"github.com/VijayBuddhi/phase-zero-project/internal/logger"
	"github.com/VijayBuddhi/phase-zero-project/internal/repository"
	"github.com/VijayBuddhi/phase-zero-project/internal/server"

	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting catalog service API",
		zap.String("env", cfg.Server.Env),
		zap.String("listen", cfg.Server.Listen),
		zap.String("store", cfg.Store.Backend),
	)

	// Construct the product store selected by configuration
	var productRepo repository.ProductRepository
	var store server.Closer

	switch cfg.Store.Backend {
	case config.StoreSQL:
		dbService, err := database.New(cfg.Database)
		if err != nil {
			log.Fatal("Failed to open database", zap.Error(err))
		}

		// Check database health
		health := dbService.Health()
		log.Info("Database health check", zap.Any("health", health))

		// Run migrations
		if err := database.RunMigrations(dbService.DB(), "migrations", log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}

		productRepo = repository.NewPostgresProductRepository(dbService.DB())
		store = dbService
	case config.StoreMemory:
		productRepo = repository.NewMemoryProductRepository()
	default:
		log.Fatal("Unknown store backend", zap.String("store", cfg.Store.Backend))
	}

	// Create server
	srv := server.NewServer(cfg, log, productRepo, store)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}

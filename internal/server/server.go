package server

import (
	"net/http"
	"time"

	"github.com/VijayBuddhi/phase-zero-project/internal/config"
	custommiddleware "github.com/VijayBuddhi/phase-zero-project/internal/middleware"
	"github.com/VijayBuddhi/phase-zero-project/internal/repository"
	"github.com/VijayBuddhi/phase-zero-project/internal/service"
	"github.com/VijayBuddhi/phase-zero-project/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Closer is implemented by stores that hold external resources.
type Closer interface {
	Close() error
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  Closer
}

// NewServer assembles the router and HTTP server. store may be nil when the
// backend holds no external resources (the in-memory store).
func NewServer(cfg *config.Config, logger *zap.Logger, productRepo repository.ProductRepository, store Closer) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize services
	catalogService := service.NewCatalogService(productRepo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(catalogService, logger)

	// Register routes
	productHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         cfg.Server.Listen,
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		store:  store,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close store", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

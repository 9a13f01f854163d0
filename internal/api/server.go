package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/config"
	"example.com/fleet/services/rental/internal/api/handlers"
	"example.com/fleet/services/rental/internal/api/middleware"
	"example.com/fleet/services/rental/internal/metrics"
	"example.com/fleet/services/rental/internal/services"
	"example.com/fleet/services/rental/internal/tracing"
)

// Services bundles the service layer the API serves.
type Services struct {
	Manufacturers services.ManufacturerService
	Categories    services.CategoryService
	Customers     services.CustomerService
	Vehicles      services.VehicleService
	Rentals       services.RentalService
}

// Server represents the HTTP server
type Server struct {
	config     config.Config
	router     *gin.Engine
	httpServer *http.Server
	services   Services
	tracer     tracing.Tracer
	collector  *metrics.Metrics
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, svcs Services, tracer tracing.Tracer, collector *metrics.Metrics) *Server {
	server := &Server{
		config:    cfg,
		services:  svcs,
		tracer:    tracer,
		collector: collector,
	}

	router := server.setupRouter()
	server.router = router

	httpServer := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
	}
	server.httpServer = httpServer

	return server
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(s.collector))
	if s.config.CorsEnabled {
		router.Use(middleware.CORS(s.config.CorsOrigins))
	}

	v1 := router.Group("/api/v1")
	handlers.NewManufacturerHandler(s.services.Manufacturers, s.tracer).RegisterRoutes(v1)
	handlers.NewCategoryHandler(s.services.Categories, s.tracer).RegisterRoutes(v1)
	handlers.NewCustomerHandler(s.services.Customers, s.tracer).RegisterRoutes(v1)
	handlers.NewVehicleHandler(s.services.Vehicles, s.tracer).RegisterRoutes(v1)
	handlers.NewRentalHandler(s.services.Rentals, s.tracer).RegisterRoutes(v1)

	handlers.NewMetricsHandler(s.collector).RegisterRoutes(router)

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.ServerAddress).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server shut down successfully")
	return nil
}

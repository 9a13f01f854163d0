package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"example.com/fleet/services/rental/config"
	"example.com/fleet/services/rental/internal/api"
	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/database"
	"example.com/fleet/services/rental/internal/messaging"
	"example.com/fleet/services/rental/internal/metrics"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/repositories"
	"example.com/fleet/services/rental/internal/search"
	"example.com/fleet/services/rental/internal/services"
	"example.com/fleet/services/rental/internal/tracing"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for the rental resource collections`,
	RunE:  runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := initDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}()

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
	}
	var projectionCache services.Cache
	if redisCache != nil {
		projectionCache = redisCache
	}

	tracer, err := tracing.NewTracer(cfg.Tracing)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		tracer = tracing.NewNoopTracer()
	}

	elasticClient, err := search.NewElasticClient(cfg.Elastic)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Elasticsearch client, continuing without search functionality")
	}

	var bus messaging.ServiceBusClient
	if busClient, err := messaging.NewServiceBusClient(cfg.Azure); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Service Bus client, continuing without events")
	} else {
		bus = busClient
		defer busClient.Close()
	}

	metricsCollector := metrics.NewMetrics()

	manufacturerRepo := repositories.NewManufacturerRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	rentalRepo := repositories.NewRentalRepository(db)

	svcs := api.Services{
		Manufacturers: services.NewManufacturerService(manufacturerRepo, vehicleRepo, rentalRepo, projectionCache),
		Categories:    services.NewCategoryService(categoryRepo, vehicleRepo, rentalRepo, projectionCache),
		Customers:     services.NewCustomerService(customerRepo, rentalRepo, projectionCache),
		Vehicles:      services.NewVehicleService(vehicleRepo, manufacturerRepo, categoryRepo, rentalRepo, projectionCache, metricsCollector),
		Rentals:       services.NewRentalService(rentalRepo, customerRepo, vehicleRepo, projectionCache, bus, elasticClient, metricsCollector),
	}

	server := api.NewServer(cfg, svcs, tracer, metricsCollector)

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Shutting down API server")
	return nil
}

func initDatabase(cfg config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	if err := models.SetupModels(db); err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return db, nil
}

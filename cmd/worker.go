package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"example.com/fleet/services/rental/config"
	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/database"
	"example.com/fleet/services/rental/internal/messaging"
	"example.com/fleet/services/rental/internal/metrics"
	"example.com/fleet/services/rental/internal/repositories"
	"example.com/fleet/services/rental/internal/search"
	"example.com/fleet/services/rental/internal/services"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background worker",
	Long:  `Start the background worker that applies rental events to the search index and re-indexes recently updated rentals`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
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

	g, ctx := errgroup.WithContext(ctx)

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

	elasticClient, err := search.NewElasticClient(cfg.Elastic)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Elasticsearch client, continuing without search functionality")
	}

	bus, err := messaging.NewServiceBusClient(cfg.Azure)
	if err != nil {
		return err
	}
	defer bus.Close()

	metricsCollector := metrics.NewMetrics()

	customerRepo := repositories.NewCustomerRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	rentalRepo := repositories.NewRentalRepository(db)

	rentalService := services.NewRentalService(rentalRepo, customerRepo, vehicleRepo, projectionCache, bus, elasticClient, metricsCollector)

	// Consume rental lifecycle events from the queue
	g.Go(func() error {
		log.Info().Str("queue", cfg.Azure.QueueName).Msg("Starting Service Bus processor")
		return bus.ProcessMessages(ctx, rentalService.ProcessEvent)
	})

	// Fallback re-index job for events the queue missed
	g.Go(func() error {
		log.Info().Dur("interval", cfg.Worker.ReindexInterval).Msg("Starting fallback re-index job")

		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Worker.ReindexInterval),
			gocron.NewTask(func() {
				since := time.Now().Add(-cfg.Worker.ReindexWindow)
				indexed, err := rentalService.IndexUpdatedSince(ctx, since)
				if err != nil {
					log.Error().Err(err).Msg("Fallback re-index job failed")
					return
				}
				log.Info().Int("indexed", indexed).Time("since", since).Msg("Fallback re-index job completed")
			}),
		)
		if err != nil {
			return err
		}

		scheduler.Start()

		<-ctx.Done()

		return scheduler.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker error")
		return err
	}

	log.Info().Msg("Worker shutting down gracefully")
	return nil
}

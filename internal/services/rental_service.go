package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/messaging"
	"example.com/fleet/services/rental/internal/metrics"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/pricing"
	"example.com/fleet/services/rental/internal/repositories"
	"example.com/fleet/services/rental/internal/search"
)

const publishTimeout = 30 * time.Second

// RentalService handles rental business logic. Reads return the
// denormalized rental projection.
type RentalService interface {
	List(ctx context.Context) ([]*models.RentalView, error)
	GetByID(ctx context.Context, id uint) (*models.RentalView, error)
	Create(ctx context.Context, rental *models.Rental) (*models.RentalView, error)
	Replace(ctx context.Context, id uint, rental *models.Rental) error
	Delete(ctx context.Context, id uint) error
	ListActiveByCustomer(ctx context.Context, customerID uint) ([]*models.RentalView, error)
	ListByPickupRange(ctx context.Context, start, end time.Time) ([]*models.RentalView, error)
	IndexUpdatedSince(ctx context.Context, since time.Time) (int, error)
	ProcessEvent(ctx context.Context, event *messaging.RentalEvent) error
}

type rentalService struct {
	repo         repositories.RentalRepository
	customerRepo repositories.CustomerRepository
	vehicleRepo  repositories.VehicleRepository
	cache        Cache
	bus          messaging.ServiceBusClient
	elastic      *search.ElasticClient
	collector    *metrics.Metrics
}

// NewRentalService creates a new rental service
func NewRentalService(
	repo repositories.RentalRepository,
	customerRepo repositories.CustomerRepository,
	vehicleRepo repositories.VehicleRepository,
	projectionCache Cache,
	bus messaging.ServiceBusClient,
	elastic *search.ElasticClient,
	collector *metrics.Metrics,
) RentalService {
	return &rentalService{
		repo:         repo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		cache:        projectionCache,
		bus:          bus,
		elastic:      elastic,
		collector:    collector,
	}
}

func (s *rentalService) List(ctx context.Context) ([]*models.RentalView, error) {
	rentals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewRentalViews(rentals), nil
}

func (s *rentalService) GetByID(ctx context.Context, id uint) (*models.RentalView, error) {
	if s.cache != nil {
		var view models.RentalView
		if err := s.cache.Get(ctx, cache.GetRentalCacheKey(id), &view); err == nil {
			s.collector.IncrementCounter(metrics.CounterCacheHits)
			return &view, nil
		}
		s.collector.IncrementCounter(metrics.CounterCacheMisses)
	}

	rental, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFound("rental")
		}
		return nil, err
	}

	view := models.NewRentalView(rental)
	s.cacheView(ctx, view)
	return view, nil
}

// Create inserts a new rental. Both references must resolve before the
// insert. When the caller leaves the total charge unset, it is derived
// from the expected duration and the daily rate.
func (s *rentalService) Create(ctx context.Context, rental *models.Rental) (*models.RentalView, error) {
	customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewReferenceError("customer")
		}
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, rental.VehicleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewReferenceError("vehicle")
		}
		return nil, err
	}

	if rental.TotalCharge == nil {
		total := pricing.TotalCharge(rental.PickupDate, rental.ExpectedReturnDate, rental.DailyRate)
		rental.TotalCharge = &total
	}

	if err := s.repo.Create(ctx, rental); err != nil {
		return nil, err
	}
	s.collector.IncrementCounter(metrics.CounterMutations)

	rental.Customer = customer
	rental.Vehicle = vehicle
	view := models.NewRentalView(rental)
	s.cacheView(ctx, view)
	s.publish(messaging.EventRentalCreated, view.ID, view)
	return view, nil
}

// Replace overwrites the stored rental. The store decides whether the
// row is still there: a zero-row update is re-checked so a concurrent
// delete surfaces as not-found rather than a write conflict.
func (s *rentalService) Replace(ctx context.Context, id uint, rental *models.Rental) error {
	if id != rental.ID {
		return NewIDMismatch("rental")
	}

	if err := s.repo.Replace(ctx, rental); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			exists, checkErr := s.repo.Exists(ctx, id)
			if checkErr != nil {
				return checkErr
			}
			if !exists {
				return NewNotFound("rental")
			}
		}
		return err
	}
	s.collector.IncrementCounter(metrics.CounterMutations)

	s.invalidate(ctx, id)
	s.publish(messaging.EventRentalReplaced, id, nil)
	return nil
}

func (s *rentalService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFound("rental")
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFound("rental")
		}
		return err
	}
	s.collector.IncrementCounter(metrics.CounterMutations)

	s.invalidate(ctx, id)
	s.publish(messaging.EventRentalDeleted, id, nil)
	return nil
}

func (s *rentalService) ListActiveByCustomer(ctx context.Context, customerID uint) ([]*models.RentalView, error) {
	rentals, err := s.repo.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, ErrNoResults
	}
	return models.NewRentalViews(rentals), nil
}

func (s *rentalService) ListByPickupRange(ctx context.Context, start, end time.Time) ([]*models.RentalView, error) {
	rentals, err := s.repo.ListByPickupRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(rentals) == 0 {
		return nil, ErrNoResults
	}
	return models.NewRentalViews(rentals), nil
}

// IndexUpdatedSince re-indexes every rental touched after the given
// instant. Run periodically by the worker as a fallback for events the
// search index missed.
func (s *rentalService) IndexUpdatedSince(ctx context.Context, since time.Time) (int, error) {
	if s.elastic == nil {
		return 0, nil
	}

	rentals, err := s.repo.ListUpdatedSince(ctx, since)
	if err != nil {
		return 0, err
	}

	indexed := 0
	for i := range rentals {
		view := models.NewRentalView(&rentals[i])
		if err := s.elastic.IndexRental(ctx, view); err != nil {
			log.Error().Err(err).Uint("rental_id", view.ID).Msg("Failed to re-index rental")
			continue
		}
		indexed++
	}

	s.collector.IncrementCounterBy(metrics.CounterIndexed, int64(indexed))
	return indexed, nil
}

// ProcessEvent applies one rental lifecycle event to the search index.
// Replaced events carry no body, so the current row is fetched; a row
// deleted in the meantime just drops out of the index.
func (s *rentalService) ProcessEvent(ctx context.Context, event *messaging.RentalEvent) error {
	s.collector.IncrementCounter(metrics.CounterEventsIn)

	if s.elastic == nil {
		return nil
	}

	switch event.Type {
	case messaging.EventRentalCreated:
		if event.Rental == nil {
			return errors.Errorf("created event %s carries no rental body", event.ID)
		}
		return s.elastic.IndexRental(ctx, event.Rental)

	case messaging.EventRentalReplaced:
		rental, err := s.repo.GetByID(ctx, event.RentalID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return s.elastic.DeleteRental(ctx, event.RentalID)
			}
			return err
		}
		return s.elastic.IndexRental(ctx, models.NewRentalView(rental))

	case messaging.EventRentalDeleted:
		return s.elastic.DeleteRental(ctx, event.RentalID)

	default:
		log.Warn().Str("event_type", event.Type).Msg("Ignoring unknown rental event")
		return nil
	}
}

// publish sends a lifecycle event off the request path. The send gets
// its own deadline so a slow broker cannot stall the caller.
func (s *rentalService) publish(eventType string, rentalID uint, view *models.RentalView) {
	if s.bus == nil {
		return
	}

	event := messaging.NewRentalEvent(eventType, rentalID, view)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.bus.SendEvent(ctx, event); err != nil {
			log.Error().Err(err).Str("event_type", eventType).Uint("rental_id", rentalID).
				Msg("Failed to publish rental event")
			return
		}
		s.collector.IncrementCounter(metrics.CounterEventsOut)
	}()
}

func (s *rentalService) cacheView(ctx context.Context, view *models.RentalView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.GetRentalCacheKey(view.ID), view, cache.DefaultTTL); err != nil {
		log.Warn().Err(err).Uint("rental_id", view.ID).Msg("Failed to cache rental")
	}
}

func (s *rentalService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.GetRentalCacheKey(id)); err != nil {
		log.Warn().Err(err).Uint("rental_id", id).Msg("Failed to invalidate rental cache")
	}
}

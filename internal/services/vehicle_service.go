package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/metrics"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/repositories"
)

// VehicleService handles vehicle business logic. Reads return the
// denormalized vehicle projection.
type VehicleService interface {
	List(ctx context.Context) ([]*models.VehicleView, error)
	GetByID(ctx context.Context, id uint) (*models.VehicleView, error)
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.VehicleView, error)
	Replace(ctx context.Context, id uint, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id uint) error
	ListAvailableByCategory(ctx context.Context, categoryID uint) ([]*models.VehicleView, error)
	ListRentedByManufacturer(ctx context.Context, manufacturerID uint) ([]*models.VehicleView, error)
}

type vehicleService struct {
	repo             repositories.VehicleRepository
	manufacturerRepo repositories.ManufacturerRepository
	categoryRepo     repositories.CategoryRepository
	rentalRepo       repositories.RentalRepository
	cache            Cache
	collector        *metrics.Metrics
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(
	repo repositories.VehicleRepository,
	manufacturerRepo repositories.ManufacturerRepository,
	categoryRepo repositories.CategoryRepository,
	rentalRepo repositories.RentalRepository,
	projectionCache Cache,
	collector *metrics.Metrics,
) VehicleService {
	return &vehicleService{
		repo:             repo,
		manufacturerRepo: manufacturerRepo,
		categoryRepo:     categoryRepo,
		rentalRepo:       rentalRepo,
		cache:            projectionCache,
		collector:        collector,
	}
}

func (s *vehicleService) List(ctx context.Context) ([]*models.VehicleView, error) {
	vehicles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewVehicleViews(vehicles), nil
}

func (s *vehicleService) GetByID(ctx context.Context, id uint) (*models.VehicleView, error) {
	if s.cache != nil {
		var view models.VehicleView
		if err := s.cache.Get(ctx, cache.GetVehicleCacheKey(id), &view); err == nil {
			s.collector.IncrementCounter(metrics.CounterCacheHits)
			return &view, nil
		}
		s.collector.IncrementCounter(metrics.CounterCacheMisses)
	}

	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFound("vehicle")
		}
		return nil, err
	}

	view := models.NewVehicleView(vehicle)
	s.cacheView(ctx, view)
	return view, nil
}

// Create inserts a new vehicle after verifying both of its references
// resolve. The same checks run on replace.
func (s *vehicleService) Create(ctx context.Context, vehicle *models.Vehicle) (*models.VehicleView, error) {
	manufacturer, err := s.resolveManufacturer(ctx, vehicle.ManufacturerID)
	if err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, vehicle.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	s.collector.IncrementCounter(metrics.CounterMutations)

	vehicle.Manufacturer = manufacturer
	vehicle.Category = category
	view := models.NewVehicleView(vehicle)
	s.cacheView(ctx, view)
	return view, nil
}

// Replace verifies the vehicle, its prospective category and its
// prospective manufacturer all exist before overwriting the record.
func (s *vehicleService) Replace(ctx context.Context, id uint, vehicle *models.Vehicle) error {
	if id != vehicle.ID {
		return NewIDMismatch("vehicle")
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFound("vehicle")
		}
		return err
	}

	if _, err := s.resolveCategory(ctx, vehicle.CategoryID); err != nil {
		return err
	}
	if _, err := s.resolveManufacturer(ctx, vehicle.ManufacturerID); err != nil {
		return err
	}

	if err := s.repo.Replace(ctx, vehicle); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFound("vehicle")
		}
		return err
	}
	s.collector.IncrementCounter(metrics.CounterMutations)

	s.invalidate(ctx, id)
	return nil
}

// Delete removes a vehicle and all rentals referencing it, dropping
// the cached projections of every removed row.
func (s *vehicleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFound("vehicle")
		}
		return err
	}

	rentalIDs, err := s.rentalRepo.DeleteByVehicle(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFound("vehicle")
		}
		return err
	}
	s.collector.IncrementCounter(metrics.CounterMutations)

	keys := []string{cache.GetVehicleCacheKey(id)}
	for _, rid := range rentalIDs {
		keys = append(keys, cache.GetRentalCacheKey(rid))
	}
	dropCachedKeys(ctx, s.cache, keys...)
	return nil
}

func (s *vehicleService) ListAvailableByCategory(ctx context.Context, categoryID uint) ([]*models.VehicleView, error) {
	vehicles, err := s.repo.ListAvailableByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return nil, ErrNoResults
	}
	return models.NewVehicleViews(vehicles), nil
}

func (s *vehicleService) ListRentedByManufacturer(ctx context.Context, manufacturerID uint) ([]*models.VehicleView, error) {
	vehicles, err := s.repo.ListRentedByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return nil, ErrNoResults
	}
	return models.NewVehicleViews(vehicles), nil
}

func (s *vehicleService) resolveManufacturer(ctx context.Context, id uint) (*models.Manufacturer, error) {
	manufacturer, err := s.manufacturerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewReferenceError("manufacturer")
		}
		return nil, err
	}
	return manufacturer, nil
}

func (s *vehicleService) resolveCategory(ctx context.Context, id uint) (*models.VehicleCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewReferenceError("category")
		}
		return nil, err
	}
	return category, nil
}

func (s *vehicleService) cacheView(ctx context.Context, view *models.VehicleView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.GetVehicleCacheKey(view.ID), view, cache.DefaultTTL); err != nil {
		log.Warn().Err(err).Uint("vehicle_id", view.ID).Msg("Failed to cache vehicle")
	}
}

func (s *vehicleService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.GetVehicleCacheKey(id)); err != nil {
		log.Warn().Err(err).Uint("vehicle_id", id).Msg("Failed to invalidate vehicle cache")
	}
}

package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/repositories"
)

// ManufacturerService handles manufacturer business logic
type ManufacturerService interface {
	List(ctx context.Context) ([]models.Manufacturer, error)
	GetByID(ctx context.Context, id uint) (*models.Manufacturer, error)
	Create(ctx context.Context, manufacturer *models.Manufacturer) error
	Replace(ctx context.Context, id uint, manufacturer *models.Manufacturer) error
	Delete(ctx context.Context, id uint) error
}

type manufacturerService struct {
	repo        repositories.ManufacturerRepository
	vehicleRepo repositories.VehicleRepository
	rentalRepo  repositories.RentalRepository
	cache       Cache
}

// NewManufacturerService creates a new manufacturer service
func NewManufacturerService(
	repo repositories.ManufacturerRepository,
	vehicleRepo repositories.VehicleRepository,
	rentalRepo repositories.RentalRepository,
	projectionCache Cache,
) ManufacturerService {
	return &manufacturerService{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		rentalRepo:  rentalRepo,
		cache:       projectionCache,
	}
}

func (s *manufacturerService) List(ctx context.Context) ([]models.Manufacturer, error) {
	manufacturers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// An empty table leaves the slice nil, which serializes as JSON
	// null rather than an empty array.
	if manufacturers == nil {
		manufacturers = []models.Manufacturer{}
	}
	return manufacturers, nil
}

func (s *manufacturerService) GetByID(ctx context.Context, id uint) (*models.Manufacturer, error) {
	manufacturer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFound("manufacturer")
		}
		return nil, err
	}
	return manufacturer, nil
}

func (s *manufacturerService) Create(ctx context.Context, manufacturer *models.Manufacturer) error {
	return s.repo.Create(ctx, manufacturer)
}

// Replace overwrites the stored manufacturer. The path identifier must
// match the identifier embedded in the payload.
func (s *manufacturerService) Replace(ctx context.Context, id uint, manufacturer *models.Manufacturer) error {
	if id != manufacturer.ID {
		return NewIDMismatch("manufacturer")
	}

	err := s.repo.Replace(ctx, manufacturer)
	if errors.Is(err, repositories.ErrNotFound) {
		return NewNotFound("manufacturer")
	}
	return err
}

// Delete removes a manufacturer and cascades over its vehicles and
// their rentals. The cascade is explicit so the exact deletion set is
// observable and testable.
func (s *manufacturerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	vehicles, err := s.vehicleRepo.ListByManufacturer(ctx, id)
	if err != nil {
		return err
	}

	for i := range vehicles {
		rentalIDs, err := s.rentalRepo.DeleteByVehicle(ctx, vehicles[i].ID)
		if err != nil {
			return err
		}
		if err := s.vehicleRepo.Delete(ctx, vehicles[i].ID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		keys := []string{cache.GetVehicleCacheKey(vehicles[i].ID)}
		for _, rid := range rentalIDs {
			keys = append(keys, cache.GetRentalCacheKey(rid))
		}
		dropCachedKeys(ctx, s.cache, keys...)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFound("manufacturer")
		}
		return err
	}

	log.Info().Uint("manufacturer_id", id).Int("vehicles", len(vehicles)).
		Msg("Manufacturer deleted with dependent vehicles")
	return nil
}

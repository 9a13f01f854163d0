package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/repositories"
)

// CategoryService handles vehicle category business logic
type CategoryService interface {
	List(ctx context.Context) ([]models.VehicleCategory, error)
	GetByID(ctx context.Context, id uint) (*models.VehicleCategory, error)
	Create(ctx context.Context, category *models.VehicleCategory) error
	Replace(ctx context.Context, id uint, category *models.VehicleCategory) error
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo        repositories.CategoryRepository
	vehicleRepo repositories.VehicleRepository
	rentalRepo  repositories.RentalRepository
	cache       Cache
}

// NewCategoryService creates a new vehicle category service
func NewCategoryService(
	repo repositories.CategoryRepository,
	vehicleRepo repositories.VehicleRepository,
	rentalRepo repositories.RentalRepository,
	projectionCache Cache,
) CategoryService {
	return &categoryService{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		rentalRepo:  rentalRepo,
		cache:       projectionCache,
	}
}

func (s *categoryService) List(ctx context.Context) ([]models.VehicleCategory, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// An empty table leaves the slice nil, which serializes as JSON
	// null rather than an empty array.
	if categories == nil {
		categories = []models.VehicleCategory{}
	}
	return categories, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uint) (*models.VehicleCategory, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFound("category")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, category *models.VehicleCategory) error {
	return s.repo.Create(ctx, category)
}

func (s *categoryService) Replace(ctx context.Context, id uint, category *models.VehicleCategory) error {
	if id != category.ID {
		return NewIDMismatch("category")
	}

	err := s.repo.Replace(ctx, category)
	if errors.Is(err, repositories.ErrNotFound) {
		return NewNotFound("category")
	}
	return err
}

// Delete removes a category and cascades over its vehicles and their
// rentals, mirroring the manufacturer cascade.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	vehicles, err := s.vehicleRepo.ListByCategory(ctx, id)
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
			return NewNotFound("category")
		}
		return err
	}

	log.Info().Uint("category_id", id).Int("vehicles", len(vehicles)).
		Msg("Category deleted with dependent vehicles")
	return nil
}

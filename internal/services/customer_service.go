package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/repositories"
)

// CustomerService handles customer business logic
type CustomerService interface {
	List(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Replace(ctx context.Context, id uint, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
}

type customerService struct {
	repo       repositories.CustomerRepository
	rentalRepo repositories.RentalRepository
	cache      Cache
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	repo repositories.CustomerRepository,
	rentalRepo repositories.RentalRepository,
	projectionCache Cache,
) CustomerService {
	return &customerService{
		repo:       repo,
		rentalRepo: rentalRepo,
		cache:      projectionCache,
	}
}

func (s *customerService) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// An empty table leaves the slice nil, which serializes as JSON
	// null rather than an empty array.
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, nil
}

func (s *customerService) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewNotFound("customer")
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	return s.repo.Create(ctx, customer)
}

func (s *customerService) Replace(ctx context.Context, id uint, customer *models.Customer) error {
	if id != customer.ID {
		return NewIDMismatch("customer")
	}

	err := s.repo.Replace(ctx, customer)
	if errors.Is(err, repositories.ErrNotFound) {
		return NewNotFound("customer")
	}
	return err
}

// Delete removes a customer and all rentals referencing them, dropping
// the cached projections of the removed rentals.
func (s *customerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	rentalIDs, err := s.rentalRepo.DeleteByCustomer(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewNotFound("customer")
		}
		return err
	}

	keys := make([]string, 0, len(rentalIDs))
	for _, rid := range rentalIDs {
		keys = append(keys, cache.GetRentalCacheKey(rid))
	}
	dropCachedKeys(ctx, s.cache, keys...)

	log.Info().Uint("customer_id", id).Int("rentals", len(rentalIDs)).Msg("Customer deleted with dependent rentals")
	return nil
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/repositories"
)

func TestDeleteManufacturerCascades(t *testing.T) {
	repo := new(MockManufacturerRepository)
	vehicleRepo := new(MockVehicleRepository)
	rentalRepo := new(MockRentalRepository)

	vehicles := []models.Vehicle{{ID: 10}, {ID: 11}, {ID: 12}}

	repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Manufacturer{ID: 1, Name: "Toyota"}, nil)
	vehicleRepo.On("ListByManufacturer", mock.Anything, uint(1)).Return(vehicles, nil)
	for _, v := range vehicles {
		rentalRepo.On("DeleteByVehicle", mock.Anything, v.ID).Return([]uint{}, nil)
		vehicleRepo.On("Delete", mock.Anything, v.ID).Return(nil)
	}
	repo.On("Delete", mock.Anything, uint(1)).Return(nil)

	service := NewManufacturerService(repo, vehicleRepo, rentalRepo, nil)

	require.NoError(t, service.Delete(context.Background(), 1))

	// Every dependent vehicle and its rentals must be removed
	repo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
	rentalRepo.AssertExpectations(t)
}

func TestDeleteManufacturerDropsCachedProjections(t *testing.T) {
	repo := new(MockManufacturerRepository)
	vehicleRepo := new(MockVehicleRepository)
	rentalRepo := new(MockRentalRepository)
	cacheMock := new(MockCache)

	repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Manufacturer{ID: 1, Name: "Toyota"}, nil)
	vehicleRepo.On("ListByManufacturer", mock.Anything, uint(1)).Return([]models.Vehicle{{ID: 10}}, nil)
	rentalRepo.On("DeleteByVehicle", mock.Anything, uint(10)).Return([]uint{100, 101}, nil)
	vehicleRepo.On("Delete", mock.Anything, uint(10)).Return(nil)
	repo.On("Delete", mock.Anything, uint(1)).Return(nil)

	cacheMock.On("Delete", mock.Anything, cache.GetVehicleCacheKey(10)).Return(nil)
	cacheMock.On("Delete", mock.Anything, cache.GetRentalCacheKey(100)).Return(nil)
	cacheMock.On("Delete", mock.Anything, cache.GetRentalCacheKey(101)).Return(nil)

	service := NewManufacturerService(repo, vehicleRepo, rentalRepo, cacheMock)

	require.NoError(t, service.Delete(context.Background(), 1))

	// Cascaded rows must not be served from the cache afterwards
	cacheMock.AssertExpectations(t)
}

func TestDeleteMissingManufacturer(t *testing.T) {
	repo := new(MockManufacturerRepository)
	vehicleRepo := new(MockVehicleRepository)
	rentalRepo := new(MockRentalRepository)

	repo.On("GetByID", mock.Anything, uint(2)).Return(nil, repositories.ErrNotFound)

	service := NewManufacturerService(repo, vehicleRepo, rentalRepo, nil)

	err := service.Delete(context.Background(), 2)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	vehicleRepo.AssertNotCalled(t, "ListByManufacturer", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReplaceManufacturerIDMismatch(t *testing.T) {
	repo := new(MockManufacturerRepository)
	vehicleRepo := new(MockVehicleRepository)
	rentalRepo := new(MockRentalRepository)

	service := NewManufacturerService(repo, vehicleRepo, rentalRepo, nil)

	err := service.Replace(context.Background(), 1, &models.Manufacturer{ID: 2, Name: "Toyota"})

	var mismatch *IDMismatchError
	require.ErrorAs(t, err, &mismatch)

	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestListManufacturersEmptyTable(t *testing.T) {
	repo := new(MockManufacturerRepository)

	repo.On("List", mock.Anything).Return(([]models.Manufacturer)(nil), nil)

	service := NewManufacturerService(repo, new(MockVehicleRepository), new(MockRentalRepository), nil)

	manufacturers, err := service.List(context.Background())
	require.NoError(t, err)

	// Must be an empty slice so the response body is [] rather than null
	require.NotNil(t, manufacturers)
	require.Empty(t, manufacturers)
}

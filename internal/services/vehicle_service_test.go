package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/metrics"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/repositories"
)

func newVehicleServiceForTest(
	repo *MockVehicleRepository,
	manufacturerRepo *MockManufacturerRepository,
	categoryRepo *MockCategoryRepository,
	rentalRepo *MockRentalRepository,
) VehicleService {
	return NewVehicleService(repo, manufacturerRepo, categoryRepo, rentalRepo, nil, metrics.NewMetrics())
}

func TestReplaceVehicleWithMissingCategory(t *testing.T) {
	repo := new(MockVehicleRepository)
	manufacturerRepo := new(MockManufacturerRepository)
	categoryRepo := new(MockCategoryRepository)
	rentalRepo := new(MockRentalRepository)

	stored := &models.Vehicle{ID: 3, Model: "Corolla", CategoryID: 1, ManufacturerID: 1}
	repo.On("GetByID", mock.Anything, uint(3)).Return(stored, nil)
	categoryRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, repositories.ErrNotFound)

	service := newVehicleServiceForTest(repo, manufacturerRepo, categoryRepo, rentalRepo)

	vehicle := &models.Vehicle{ID: 3, Model: "Corolla", CategoryID: 99, ManufacturerID: 1}
	err := service.Replace(context.Background(), 3, vehicle)

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, "category", refErr.Resource)

	// The stored vehicle must remain untouched
	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestCreateVehicleChecksReferences(t *testing.T) {
	repo := new(MockVehicleRepository)
	manufacturerRepo := new(MockManufacturerRepository)
	categoryRepo := new(MockCategoryRepository)
	rentalRepo := new(MockRentalRepository)

	manufacturerRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Manufacturer{ID: 1, Name: "Toyota"}, nil)
	categoryRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.VehicleCategory{ID: 2, Name: "Compact"}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Vehicle")).Return(nil)

	service := newVehicleServiceForTest(repo, manufacturerRepo, categoryRepo, rentalRepo)

	vehicle := &models.Vehicle{Model: "Corolla", LicensePlate: "ABC1234", ManufacturerID: 1, CategoryID: 2}
	view, err := service.Create(context.Background(), vehicle)

	require.NoError(t, err)
	require.Equal(t, "Toyota", view.ManufacturerName)
	require.Equal(t, "Compact", view.CategoryName)

	repo.AssertExpectations(t)
}

func TestDeleteVehicleCascadesRentals(t *testing.T) {
	repo := new(MockVehicleRepository)
	manufacturerRepo := new(MockManufacturerRepository)
	categoryRepo := new(MockCategoryRepository)
	rentalRepo := new(MockRentalRepository)

	repo.On("GetByID", mock.Anything, uint(4)).Return(&models.Vehicle{ID: 4}, nil)
	rentalRepo.On("DeleteByVehicle", mock.Anything, uint(4)).Return([]uint{}, nil)
	repo.On("Delete", mock.Anything, uint(4)).Return(nil)

	service := newVehicleServiceForTest(repo, manufacturerRepo, categoryRepo, rentalRepo)

	require.NoError(t, service.Delete(context.Background(), 4))

	rentalRepo.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDeleteVehicleDropsCachedProjections(t *testing.T) {
	repo := new(MockVehicleRepository)
	rentalRepo := new(MockRentalRepository)
	cacheMock := new(MockCache)

	repo.On("GetByID", mock.Anything, uint(4)).Return(&models.Vehicle{ID: 4}, nil)
	rentalRepo.On("DeleteByVehicle", mock.Anything, uint(4)).Return([]uint{40, 41}, nil)
	repo.On("Delete", mock.Anything, uint(4)).Return(nil)

	cacheMock.On("Delete", mock.Anything, cache.GetVehicleCacheKey(4)).Return(nil)
	cacheMock.On("Delete", mock.Anything, cache.GetRentalCacheKey(40)).Return(nil)
	cacheMock.On("Delete", mock.Anything, cache.GetRentalCacheKey(41)).Return(nil)

	service := NewVehicleService(repo, new(MockManufacturerRepository), new(MockCategoryRepository), rentalRepo, cacheMock, metrics.NewMetrics())

	require.NoError(t, service.Delete(context.Background(), 4))

	// The vehicle and its cascaded rentals must leave the cache too
	cacheMock.AssertExpectations(t)
}

func TestListAvailableByCategoryEmpty(t *testing.T) {
	repo := new(MockVehicleRepository)
	manufacturerRepo := new(MockManufacturerRepository)
	categoryRepo := new(MockCategoryRepository)
	rentalRepo := new(MockRentalRepository)

	repo.On("ListAvailableByCategory", mock.Anything, uint(8)).Return([]models.Vehicle{}, nil)

	service := newVehicleServiceForTest(repo, manufacturerRepo, categoryRepo, rentalRepo)

	views, err := service.ListAvailableByCategory(context.Background(), 8)

	require.Nil(t, views)
	require.ErrorIs(t, err, ErrNoResults)
}

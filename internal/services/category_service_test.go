package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/fleet/services/rental/internal/cache"
	"example.com/fleet/services/rental/internal/models"
)

func TestDeleteCategoryDropsCachedProjections(t *testing.T) {
	repo := new(MockCategoryRepository)
	vehicleRepo := new(MockVehicleRepository)
	rentalRepo := new(MockRentalRepository)
	cacheMock := new(MockCache)

	repo.On("GetByID", mock.Anything, uint(5)).Return(&models.VehicleCategory{ID: 5, Name: "Compact"}, nil)
	vehicleRepo.On("ListByCategory", mock.Anything, uint(5)).Return([]models.Vehicle{{ID: 20}}, nil)
	rentalRepo.On("DeleteByVehicle", mock.Anything, uint(20)).Return([]uint{200}, nil)
	vehicleRepo.On("Delete", mock.Anything, uint(20)).Return(nil)
	repo.On("Delete", mock.Anything, uint(5)).Return(nil)

	cacheMock.On("Delete", mock.Anything, cache.GetVehicleCacheKey(20)).Return(nil)
	cacheMock.On("Delete", mock.Anything, cache.GetRentalCacheKey(200)).Return(nil)

	service := NewCategoryService(repo, vehicleRepo, rentalRepo, cacheMock)

	require.NoError(t, service.Delete(context.Background(), 5))

	// Cascaded rows must not be served from the cache afterwards
	cacheMock.AssertExpectations(t)
}

func TestListCategoriesEmptyTable(t *testing.T) {
	repo := new(MockCategoryRepository)

	repo.On("List", mock.Anything).Return(([]models.VehicleCategory)(nil), nil)

	service := NewCategoryService(repo, new(MockVehicleRepository), new(MockRentalRepository), nil)

	categories, err := service.List(context.Background())
	require.NoError(t, err)

	// Must be an empty slice so the response body is [] rather than null
	require.NotNil(t, categories)
	require.Empty(t, categories)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/fleet/services/rental/internal/metrics"
	"example.com/fleet/services/rental/internal/models"
	"example.com/fleet/services/rental/internal/repositories"
)

func newRentalServiceForTest(
	rentalRepo *MockRentalRepository,
	customerRepo *MockCustomerRepository,
	vehicleRepo *MockVehicleRepository,
) RentalService {
	return NewRentalService(rentalRepo, customerRepo, vehicleRepo, nil, nil, nil, metrics.NewMetrics())
}

func TestCreateRentalWithMissingCustomer(t *testing.T) {
	rentalRepo := new(MockRentalRepository)
	customerRepo := new(MockCustomerRepository)
	vehicleRepo := new(MockVehicleRepository)

	customerRepo.On("GetByID", mock.Anything, uint(42)).Return(nil, repositories.ErrNotFound)

	service := newRentalServiceForTest(rentalRepo, customerRepo, vehicleRepo)

	rental := &models.Rental{
		PickupDate:         time.Now(),
		ExpectedReturnDate: time.Now().Add(72 * time.Hour),
		DailyRate:          100.00,
		CustomerID:         42,
		VehicleID:          7,
	}

	view, err := service.Create(context.Background(), rental)

	require.Nil(t, view)
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, "customer", refErr.Resource)

	// Nothing may reach the store when the reference does not resolve
	rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	customerRepo.AssertExpectations(t)
}

func TestCreateRentalDerivesTotalCharge(t *testing.T) {
	rentalRepo := new(MockRentalRepository)
	customerRepo := new(MockCustomerRepository)
	vehicleRepo := new(MockVehicleRepository)

	customer := &models.Customer{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com"}
	vehicle := &models.Vehicle{ID: 2, Model: "Corolla", LicensePlate: "ABC1234"}

	customerRepo.On("GetByID", mock.Anything, uint(1)).Return(customer, nil)
	vehicleRepo.On("GetByID", mock.Anything, uint(2)).Return(vehicle, nil)
	rentalRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Rental")).Return(nil)

	service := newRentalServiceForTest(rentalRepo, customerRepo, vehicleRepo)

	pickup := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rental := &models.Rental{
		PickupDate:         pickup,
		ExpectedReturnDate: pickup.AddDate(0, 0, 3),
		DailyRate:          100.00,
		CustomerID:         1,
		VehicleID:          2,
	}

	view, err := service.Create(context.Background(), rental)

	require.NoError(t, err)
	require.NotNil(t, view)
	require.NotNil(t, view.TotalCharge)
	require.Equal(t, 300.00, *view.TotalCharge)
	require.Equal(t, "Ada Lovelace", view.CustomerName)
	require.Equal(t, "Corolla", view.VehicleModel)

	rentalRepo.AssertExpectations(t)
}

func TestCreateRentalKeepsCallerTotalCharge(t *testing.T) {
	rentalRepo := new(MockRentalRepository)
	customerRepo := new(MockCustomerRepository)
	vehicleRepo := new(MockVehicleRepository)

	customerRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Customer{ID: 1}, nil)
	vehicleRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.Vehicle{ID: 2}, nil)
	rentalRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Rental")).Return(nil)

	service := newRentalServiceForTest(rentalRepo, customerRepo, vehicleRepo)

	total := 999.99
	pickup := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rental := &models.Rental{
		PickupDate:         pickup,
		ExpectedReturnDate: pickup.AddDate(0, 0, 3),
		DailyRate:          100.00,
		TotalCharge:        &total,
		CustomerID:         1,
		VehicleID:          2,
	}

	view, err := service.Create(context.Background(), rental)

	require.NoError(t, err)
	require.Equal(t, 999.99, *view.TotalCharge)
}

func TestReplaceRentalIDMismatch(t *testing.T) {
	rentalRepo := new(MockRentalRepository)
	customerRepo := new(MockCustomerRepository)
	vehicleRepo := new(MockVehicleRepository)

	service := newRentalServiceForTest(rentalRepo, customerRepo, vehicleRepo)

	err := service.Replace(context.Background(), 5, &models.Rental{ID: 6})

	var mismatch *IDMismatchError
	require.ErrorAs(t, err, &mismatch)

	// Rejected before any store access
	rentalRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	rentalRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestReplaceRentalVanishedRow(t *testing.T) {
	rentalRepo := new(MockRentalRepository)
	customerRepo := new(MockCustomerRepository)
	vehicleRepo := new(MockVehicleRepository)

	rentalRepo.On("Replace", mock.Anything, mock.AnythingOfType("*models.Rental")).Return(repositories.ErrNotFound)
	rentalRepo.On("Exists", mock.Anything, uint(5)).Return(false, nil)

	service := newRentalServiceForTest(rentalRepo, customerRepo, vehicleRepo)

	err := service.Replace(context.Background(), 5, &models.Rental{ID: 5})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "rental", notFound.Resource)

	rentalRepo.AssertExpectations(t)
}

func TestListActiveByCustomerEmpty(t *testing.T) {
	rentalRepo := new(MockRentalRepository)
	customerRepo := new(MockCustomerRepository)
	vehicleRepo := new(MockVehicleRepository)

	rentalRepo.On("ListActiveByCustomer", mock.Anything, uint(9)).Return([]models.Rental{}, nil)

	service := newRentalServiceForTest(rentalRepo, customerRepo, vehicleRepo)

	views, err := service.ListActiveByCustomer(context.Background(), 9)

	require.Nil(t, views)
	require.ErrorIs(t, err, ErrNoResults)
}

func TestListByPickupRange(t *testing.T) {
	rentalRepo := new(MockRentalRepository)
	customerRepo := new(MockCustomerRepository)
	vehicleRepo := new(MockVehicleRepository)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	rentals := []models.Rental{
		{ID: 1, PickupDate: start.AddDate(0, 0, 10), Customer: &models.Customer{Name: "Ada Lovelace"}},
	}
	rentalRepo.On("ListByPickupRange", mock.Anything, start, end).Return(rentals, nil)

	service := newRentalServiceForTest(rentalRepo, customerRepo, vehicleRepo)

	views, err := service.ListByPickupRange(context.Background(), start, end)

	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Ada Lovelace", views[0].CustomerName)
}

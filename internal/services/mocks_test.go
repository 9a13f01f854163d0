package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"example.com/fleet/services/rental/internal/models"
)

// Mock repositories for testing

type MockManufacturerRepository struct {
	mock.Mock
}

func (m *MockManufacturerRepository) Create(ctx context.Context, manufacturer *models.Manufacturer) error {
	args := m.Called(ctx, manufacturer)
	return args.Error(0)
}

func (m *MockManufacturerRepository) GetByID(ctx context.Context, id uint) (*models.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) List(ctx context.Context) ([]models.Manufacturer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) Replace(ctx context.Context, manufacturer *models.Manufacturer) error {
	args := m.Called(ctx, manufacturer)
	return args.Error(0)
}

func (m *MockManufacturerRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.VehicleCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uint) (*models.VehicleCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleCategory), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.VehicleCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.VehicleCategory), args.Error(1)
}

func (m *MockCategoryRepository) Replace(ctx context.Context, category *models.VehicleCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Replace(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Replace(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) ListByManufacturer(ctx context.Context, manufacturerID uint) ([]models.Vehicle, error) {
	args := m.Called(ctx, manufacturerID)
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByCategory(ctx context.Context, categoryID uint) ([]models.Vehicle, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListAvailableByCategory(ctx context.Context, categoryID uint) ([]models.Vehicle, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListRentedByManufacturer(ctx context.Context, manufacturerID uint) ([]models.Vehicle, error) {
	args := m.Called(ctx, manufacturerID)
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) Create(ctx context.Context, rental *models.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) GetByID(ctx context.Context, id uint) (*models.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *MockRentalRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepository) List(ctx context.Context) ([]models.Rental, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Rental), args.Error(1)
}

func (m *MockRentalRepository) Replace(ctx context.Context, rental *models.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRentalRepository) ListActiveByCustomer(ctx context.Context, customerID uint) ([]models.Rental, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]models.Rental), args.Error(1)
}

func (m *MockRentalRepository) ListByPickupRange(ctx context.Context, start, end time.Time) ([]models.Rental, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]models.Rental), args.Error(1)
}

func (m *MockRentalRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]models.Rental, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]models.Rental), args.Error(1)
}

func (m *MockRentalRepository) DeleteByVehicle(ctx context.Context, vehicleID uint) ([]uint, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockRentalRepository) DeleteByCustomer(ctx context.Context, customerID uint) ([]uint, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

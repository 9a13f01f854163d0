package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/fleet/services/rental/internal/models"
)

// VehicleRepository defines storage operations for vehicles. Reads
// preload the manufacturer and category so callers can project the
// denormalized vehicle view without extra queries.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uint) (*models.Vehicle, error)
	List(ctx context.Context) ([]models.Vehicle, error)
	Replace(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id uint) error
	ListByManufacturer(ctx context.Context, manufacturerID uint) ([]models.Vehicle, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]models.Vehicle, error)
	ListAvailableByCategory(ctx context.Context, categoryID uint) ([]models.Vehicle, error)
	ListRentedByManufacturer(ctx context.Context, manufacturerID uint) ([]models.Vehicle, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if err := r.db.WithContext(ctx).Omit("Manufacturer", "Category", "Rentals").Create(vehicle).Error; err != nil {
		return errors.Wrap(err, "failed to create vehicle")
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Preload("Category").
		First(&vehicle, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get vehicle")
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Manufacturer").
		Preload("Category").
		Find(&vehicles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vehicles")
	}
	return vehicles, nil
}

func (r *vehicleRepository) Replace(ctx context.Context, vehicle *models.Vehicle) error {
	res := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", vehicle.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(vehicle)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to replace vehicle")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Vehicle{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete vehicle")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *vehicleRepository) ListByManufacturer(ctx context.Context, manufacturerID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("manufacturer_id = ?", manufacturerID).
		Find(&vehicles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vehicles by manufacturer")
	}
	return vehicles, nil
}

func (r *vehicleRepository) ListByCategory(ctx context.Context, categoryID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Find(&vehicles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vehicles by category")
	}
	return vehicles, nil
}

func (r *vehicleRepository) ListAvailableByCategory(ctx context.Context, categoryID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("available = ? AND category_id = ?", true, categoryID).
		Preload("Manufacturer").
		Preload("Category").
		Find(&vehicles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available vehicles")
	}
	return vehicles, nil
}

// ListRentedByManufacturer returns the vehicles of a manufacturer that
// appear in at least one rental, deduplicated by vehicle.
func (r *vehicleRepository) ListRentedByManufacturer(ctx context.Context, manufacturerID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Distinct("vehicles.*").
		Joins("JOIN rentals ON rentals.vehicle_id = vehicles.id").
		Where("vehicles.manufacturer_id = ?", manufacturerID).
		Preload("Manufacturer").
		Preload("Category").
		Find(&vehicles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rented vehicles by manufacturer")
	}
	return vehicles, nil
}

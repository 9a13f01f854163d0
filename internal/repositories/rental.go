package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"example.com/fleet/services/rental/internal/models"
)

// RentalRepository defines storage operations for rentals. Reads
// preload the customer and the vehicle with its manufacturer so the
// denormalized rental view can be projected directly.
type RentalRepository interface {
	Create(ctx context.Context, rental *models.Rental) error
	GetByID(ctx context.Context, id uint) (*models.Rental, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.Rental, error)
	Replace(ctx context.Context, rental *models.Rental) error
	Delete(ctx context.Context, id uint) error
	ListActiveByCustomer(ctx context.Context, customerID uint) ([]models.Rental, error)
	ListByPickupRange(ctx context.Context, start, end time.Time) ([]models.Rental, error)
	ListUpdatedSince(ctx context.Context, since time.Time) ([]models.Rental, error)
	DeleteByVehicle(ctx context.Context, vehicleID uint) ([]uint, error)
	DeleteByCustomer(ctx context.Context, customerID uint) ([]uint, error)
}

type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository creates a new rental repository
func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rental *models.Rental) error {
	if err := r.db.WithContext(ctx).Omit("Customer", "Vehicle").Create(rental).Error; err != nil {
		return errors.Wrap(err, "failed to create rental")
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id uint) (*models.Rental, error) {
	var rental models.Rental
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicle.Manufacturer").
		First(&rental, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get rental")
	}
	return &rental, nil
}

// Exists reports whether a rental row is present without loading its
// associations. Used for the post-conflict re-check on replace.
func (r *rentalRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check rental existence")
	}
	return count > 0, nil
}

func (r *rentalRepository) List(ctx context.Context) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicle.Manufacturer").
		Find(&rentals).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rentals")
	}
	return rentals, nil
}

func (r *rentalRepository) Replace(ctx context.Context, rental *models.Rental) error {
	res := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("id = ?", rental.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(rental)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to replace rental")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Rental{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete rental")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *rentalRepository) ListActiveByCustomer(ctx context.Context, customerID uint) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND actual_return_date IS NULL", customerID).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicle.Manufacturer").
		Find(&rentals).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active rentals by customer")
	}
	return rentals, nil
}

// ListByPickupRange returns rentals whose pickup date falls within the
// inclusive [start, end] range.
func (r *rentalRepository) ListByPickupRange(ctx context.Context, start, end time.Time) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Where("pickup_date >= ? AND pickup_date <= ?", start, end).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicle.Manufacturer").
		Find(&rentals).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rentals by pickup range")
	}
	return rentals, nil
}

func (r *rentalRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).
		Where("updated_at >= ?", since).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Vehicle.Manufacturer").
		Find(&rentals).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recently updated rentals")
	}
	return rentals, nil
}

// DeleteByVehicle removes every rental referencing the vehicle and
// returns the IDs of the deleted rows so callers can drop cached
// projections.
func (r *rentalRepository) DeleteByVehicle(ctx context.Context, vehicleID uint) ([]uint, error) {
	var deleted []models.Rental
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("vehicle_id = ?", vehicleID).
		Delete(&deleted).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete rentals by vehicle")
	}
	return rentalIDs(deleted), nil
}

// DeleteByCustomer removes every rental referencing the customer and
// returns the IDs of the deleted rows.
func (r *rentalRepository) DeleteByCustomer(ctx context.Context, customerID uint) ([]uint, error) {
	var deleted []models.Rental
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("customer_id = ?", customerID).
		Delete(&deleted).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete rentals by customer")
	}
	return rentalIDs(deleted), nil
}

func rentalIDs(rentals []models.Rental) []uint {
	ids := make([]uint, 0, len(rentals))
	for i := range rentals {
		ids = append(ids, rentals[i].ID)
	}
	return ids
}

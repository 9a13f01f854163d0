package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/fleet/services/rental/internal/models"
)

// ManufacturerRepository defines storage operations for manufacturers
type ManufacturerRepository interface {
	Create(ctx context.Context, manufacturer *models.Manufacturer) error
	GetByID(ctx context.Context, id uint) (*models.Manufacturer, error)
	List(ctx context.Context) ([]models.Manufacturer, error)
	Replace(ctx context.Context, manufacturer *models.Manufacturer) error
	Delete(ctx context.Context, id uint) error
}

type manufacturerRepository struct {
	db *gorm.DB
}

// NewManufacturerRepository creates a new manufacturer repository
func NewManufacturerRepository(db *gorm.DB) ManufacturerRepository {
	return &manufacturerRepository{db: db}
}

func (r *manufacturerRepository) Create(ctx context.Context, manufacturer *models.Manufacturer) error {
	if err := r.db.WithContext(ctx).Omit("Vehicles").Create(manufacturer).Error; err != nil {
		return errors.Wrap(err, "failed to create manufacturer")
	}
	return nil
}

func (r *manufacturerRepository) GetByID(ctx context.Context, id uint) (*models.Manufacturer, error) {
	var manufacturer models.Manufacturer
	err := r.db.WithContext(ctx).First(&manufacturer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get manufacturer")
	}
	return &manufacturer, nil
}

func (r *manufacturerRepository) List(ctx context.Context) ([]models.Manufacturer, error) {
	var manufacturers []models.Manufacturer
	if err := r.db.WithContext(ctx).Find(&manufacturers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list manufacturers")
	}
	return manufacturers, nil
}

// Replace overwrites every stored field of the manufacturer row.
// ErrNotFound is returned when the row no longer exists.
func (r *manufacturerRepository) Replace(ctx context.Context, manufacturer *models.Manufacturer) error {
	res := r.db.WithContext(ctx).
		Model(&models.Manufacturer{}).
		Where("id = ?", manufacturer.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(manufacturer)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to replace manufacturer")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *manufacturerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Manufacturer{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete manufacturer")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

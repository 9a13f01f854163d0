package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/fleet/services/rental/internal/models"
)

// CategoryRepository defines storage operations for vehicle categories
type CategoryRepository interface {
	Create(ctx context.Context, category *models.VehicleCategory) error
	GetByID(ctx context.Context, id uint) (*models.VehicleCategory, error)
	List(ctx context.Context) ([]models.VehicleCategory, error)
	Replace(ctx context.Context, category *models.VehicleCategory) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new vehicle category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.VehicleCategory) error {
	if err := r.db.WithContext(ctx).Omit("Vehicles").Create(category).Error; err != nil {
		return errors.Wrap(err, "failed to create category")
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.VehicleCategory, error) {
	var category models.VehicleCategory
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get category")
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.VehicleCategory, error) {
	var categories []models.VehicleCategory
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	return categories, nil
}

func (r *categoryRepository) Replace(ctx context.Context, category *models.VehicleCategory) error {
	res := r.db.WithContext(ctx).
		Model(&models.VehicleCategory{}).
		Where("id = ?", category.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(category)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to replace category")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.VehicleCategory{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to delete category")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

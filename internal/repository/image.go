package repository

import (
	"context"
	"errors"

	"dentalreach/internal/models"

	"gorm.io/gorm"
)

// ImageRepository defines storage operations for processed product images.
type ImageRepository interface {
	Create(ctx context.Context, image *models.ProductImage) error
	GetByID(ctx context.Context, id uint) (*models.ProductImage, error)
	ListByProduct(ctx context.Context, productID uint) ([]models.ProductImage, error)
	Delete(ctx context.Context, id uint) error
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository returns a repository implementation for product images.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.ProductImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *imageRepository) GetByID(ctx context.Context, id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := readDB(r.db).WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &image, nil
}

func (r *imageRepository) ListByProduct(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := readDB(r.db).WithContext(ctx).
		// Data stays behind the detail endpoint; listings only need metadata.
		Omit("data").
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&images).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ProductImage{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

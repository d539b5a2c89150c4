package repository

import (
	"context"
	"errors"
	"time"

	"dentalreach/internal/cache"
	"dentalreach/internal/models"
	"dentalreach/internal/observability"

	"gorm.io/gorm"
)

// ProductRepository defines the interface for marketplace product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	ListVisible(ctx context.Context, limit, offset int) ([]*models.Product, int64, error)
	ListBySeller(ctx context.Context, sellerID uint, limit, offset int) ([]*models.Product, error)
	ListPendingApproval(ctx context.Context, limit, offset int) ([]*models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	key := cache.ProductKey(id)

	err := cache.Aside(ctx, key, &product, cache.ProductTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Preload("Seller").
			First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Product", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListVisible returns publicly visible products. Sponsored listings lead,
// then featured, then newest, with the total visible count for pagination.
func (r *productRepository) ListVisible(ctx context.Context, limit, offset int) ([]*models.Product, int64, error) {
	var products []*models.Product
	var total int64

	db := readDB(r.db).WithContext(ctx).
		Model(&models.Product{}).
		Where("admin_approved = ? AND is_active = ?", true, true)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	start := time.Now()
	err := db.
		Preload("Seller").
		Order("is_sponsored DESC, is_featured DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	observability.ObserveQuery("list_visible", "products", start)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return products, total, nil
}

func (r *productRepository) ListBySeller(ctx context.Context, sellerID uint, limit, offset int) ([]*models.Product, error) {
	var products []*models.Product
	if err := readDB(r.db).WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return products, nil
}

func (r *productRepository) ListPendingApproval(ctx context.Context, limit, offset int) ([]*models.Product, int64, error) {
	var products []*models.Product
	var total int64

	db := readDB(r.db).WithContext(ctx).
		Model(&models.Product{}).
		Where("admin_approved = ?", false)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := db.
		Preload("Seller").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return products, total, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, product.ID)
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProduct(ctx, id)
	return nil
}

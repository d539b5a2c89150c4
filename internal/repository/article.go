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

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	ListApproved(ctx context.Context, limit, offset int) ([]*models.Article, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Article, error)
	ListPendingReview(ctx context.Context, limit, offset int) ([]*models.Article, int64, error)
	ListJournals(ctx context.Context) ([]models.Journal, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	key := cache.ArticleKey(id)

	err := cache.Aside(ctx, key, &article, cache.ArticleTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Preload("Author").
			Preload("Journal").
			First(&article, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Article", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ListApproved returns the newest approved articles plus the total count of
// approved rows for pagination.
func (r *articleRepository) ListApproved(ctx context.Context, limit, offset int) ([]*models.Article, int64, error) {
	var articles []*models.Article
	var total int64

	db := readDB(r.db).WithContext(ctx).Model(&models.Article{}).Where("is_approved = ?", true)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	start := time.Now()
	err := db.
		Preload("Author").
		Preload("Journal").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	observability.ObserveQuery("list_approved", "articles", start)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return articles, total, nil
}

func (r *articleRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Article, error) {
	var articles []*models.Article
	if err := readDB(r.db).WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) ListPendingReview(ctx context.Context, limit, offset int) ([]*models.Article, int64, error) {
	var articles []*models.Article
	var total int64

	db := readDB(r.db).WithContext(ctx).Model(&models.Article{}).Where("is_approved = ?", false)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := db.
		Preload("Author").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return articles, total, nil
}

func (r *articleRepository) ListJournals(ctx context.Context) ([]models.Journal, error) {
	var journals []models.Journal

	err := cache.Aside(ctx, cache.JournalListKey, &journals, cache.JournalListTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).Order("issue_date DESC").Find(&journals).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return journals, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.ID)
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Article{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, id)
	return nil
}

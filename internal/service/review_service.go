package service

import (
	"context"
	"errors"
	"strings"

	"dentalreach/internal/cache"
	"dentalreach/internal/models"

	"gorm.io/gorm"
)

// ReviewService implements profile reviews and the composite reputation.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService returns a new ReviewService.
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// AddReview records a rating of profileID by raterID. The unique
// (profile_id, rater_id) index is the authoritative guard; a duplicate
// submission surfaces as a conflict regardless of what the has-reviewed
// check said earlier.
func (s *ReviewService) AddReview(
	ctx context.Context, profileID, raterID uint, rating int, comment string,
) (*models.ProfileReview, error) {
	if profileID == raterID {
		return nil, models.NewValidationError("You cannot review your own profile")
	}
	if rating < 1 || rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	var profile models.User
	if err := s.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", profileID)
		}
		return nil, models.NewInternalError(err)
	}

	review := &models.ProfileReview{
		ProfileID: profileID,
		RaterID:   raterID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate key") ||
			strings.Contains(msg, "unique constraint") ||
			strings.Contains(msg, "23505") {
			return nil, models.NewConflictError("You have already reviewed this profile")
		}
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateReputation(ctx, profileID)
	return review, nil
}

// HasReviewed reports whether raterID already reviewed profileID. The result
// only gates the review form in the UI.
func (s *ReviewService) HasReviewed(ctx context.Context, profileID, raterID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.ProfileReview{}).
		Where("profile_id = ? AND rater_id = ?", profileID, raterID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListReviews returns the newest reviews of a profile.
func (s *ReviewService) ListReviews(ctx context.Context, profileID uint, limit, offset int) ([]models.ProfileReview, error) {
	var reviews []models.ProfileReview
	if err := s.db.WithContext(ctx).
		Preload("Rater").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

// Reputation computes the composite reputation aggregate for a profile.
func (s *ReviewService) Reputation(ctx context.Context, profileID uint) (*models.Reputation, error) {
	var rep models.Reputation

	err := cache.Aside(ctx, cache.ReputationKey(profileID), &rep, cache.ReputationTTL, func() error {
		type row struct {
			AverageRating float64
			ReviewCount   int64
		}
		var r row
		if err := s.db.WithContext(ctx).
			Model(&models.ProfileReview{}).
			Select("COALESCE(AVG(rating), 0) as average_rating, COUNT(*) as review_count").
			Where("profile_id = ?", profileID).
			Scan(&r).Error; err != nil {
			return models.NewInternalError(err)
		}
		rep = models.Reputation{
			ProfileID:     profileID,
			AverageRating: r.AverageRating,
			ReviewCount:   r.ReviewCount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

package service

import (
	"context"
	"testing"

	"dentalreach/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReviewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.ProfileReview{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestAddReviewRejectsSelfReview(t *testing.T) {
	t.Parallel()
	db := setupReviewTestDB(t)
	svc := NewReviewService(db)

	_, err := svc.AddReview(context.Background(), 1, 1, 5, "great me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "own profile")
}

func TestAddReviewValidatesRating(t *testing.T) {
	t.Parallel()
	db := setupReviewTestDB(t)
	svc := NewReviewService(db)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.AddReview(context.Background(), 1, 2, rating, "")
		require.Error(t, err, "rating %d", rating)
	}
}

func TestAddReviewDuplicateIsConflict(t *testing.T) {
	t.Parallel()
	db := setupReviewTestDB(t)
	svc := NewReviewService(db)

	profile := createTestUser(t, db, "reviewed")
	rater := createTestUser(t, db, "rater")

	ctx := context.Background()
	_, err := svc.AddReview(ctx, profile.ID, rater.ID, 4, "solid work")
	require.NoError(t, err)

	// The unique index catches the race even when the has-reviewed check
	// passed earlier.
	_, err = svc.AddReview(ctx, profile.ID, rater.ID, 5, "changed my mind")
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)

	reviewed, err := svc.HasReviewed(ctx, profile.ID, rater.ID)
	require.NoError(t, err)
	assert.True(t, reviewed)
}

func TestReputationAggregatesReviews(t *testing.T) {
	t.Parallel()
	db := setupReviewTestDB(t)
	svc := NewReviewService(db)

	profile := createTestUser(t, db, "popular")
	ctx := context.Background()

	for i, rating := range []int{5, 4, 3} {
		rater := createTestUser(t, db, "fan"+string(rune('a'+i)))
		_, err := svc.AddReview(ctx, profile.ID, rater.ID, rating, "")
		require.NoError(t, err)
	}

	rep, err := svc.Reputation(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, rep.ProfileID)
	assert.Equal(t, int64(3), rep.ReviewCount)
	assert.InDelta(t, 4.0, rep.AverageRating, 0.001)
}

func TestReputationEmptyProfile(t *testing.T) {
	t.Parallel()
	db := setupReviewTestDB(t)
	svc := NewReviewService(db)

	rep, err := svc.Reputation(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rep.ReviewCount)
	assert.Equal(t, 0.0, rep.AverageRating)
}

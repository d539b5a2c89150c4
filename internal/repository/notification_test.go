package repository

import (
	"context"
	"errors"
	"testing"

	"dentalreach/internal/cache"
	"dentalreach/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	return db
}

func createNotifications(t *testing.T, repo NotificationRepository, userID uint, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		err := repo.Create(context.Background(), &models.Notification{
			UserID:  userID,
			Type:    models.NotificationApplicationApproved,
			Message: "test notification",
		})
		require.NoError(t, err)
	}
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	createNotifications(t, repo, 1, 3)
	createNotifications(t, repo, 2, 1)

	list, err := repo.ListByUser(ctx, 1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	for _, n := range list {
		assert.Equal(t, uint(1), n.UserID)
	}

	limited, err := repo.ListByUser(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	createNotifications(t, repo, 1, 1)

	var n models.Notification
	require.NoError(t, db.First(&n).Error)
	require.False(t, n.Read)

	require.NoError(t, repo.MarkRead(ctx, 1, n.ID))
	require.NoError(t, db.First(&n, n.ID).Error)
	assert.True(t, n.Read)
}

func TestNotificationRepository_MarkReadWrongUser(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	createNotifications(t, repo, 1, 1)

	var n models.Notification
	require.NoError(t, db.First(&n).Error)

	// Another user cannot mark someone else's notification.
	err := repo.MarkRead(ctx, 2, n.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	require.NoError(t, db.First(&n, n.ID).Error)
	assert.False(t, n.Read)
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db := setupNotificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	createNotifications(t, repo, 1, 4)
	createNotifications(t, repo, 2, 2)

	require.NoError(t, repo.MarkAllRead(ctx, 1))

	count, err := repo.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.UnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNotificationRepository_UnreadCountUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := setupNotificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	createNotifications(t, repo, 1, 2)

	count, err := repo.UnreadCount(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	// The count is now cached; a write that bypasses the repository is not
	// visible until the cache is invalidated.
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ?", 1).
		Update("read", true).Error)

	count, err = repo.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	cache.InvalidateUnreadCount(ctx, 1)

	count, err = repo.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"dentalreach/internal/models"
	"dentalreach/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupImageTestService(t *testing.T) (*ImageService, repository.ImageRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProductImage{}))

	repo := repository.NewImageRepository(db)
	return NewImageService(repo), repo
}

// pngFixture renders a solid-color PNG of the given size.
func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 144, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_UploadStoresWebP(t *testing.T) {
	t.Parallel()
	svc, _ := setupImageTestService(t)

	stored, err := svc.Upload(context.Background(), UploadImageInput{
		ProductID:  1,
		UploaderID: 7,
		Content:    pngFixture(t, 320, 240),
	})
	require.NoError(t, err)

	assert.Equal(t, "image/webp", stored.ContentType)
	assert.Equal(t, 320, stored.Width)
	assert.Equal(t, 240, stored.Height)
	assert.NotEmpty(t, stored.Data)
	assert.Equal(t, len(stored.Data), stored.SizeBytes)

	fetched, err := svc.Get(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Data, fetched.Data)
}

func TestImageService_UploadDownscalesLargeImages(t *testing.T) {
	t.Parallel()
	svc, _ := setupImageTestService(t)

	stored, err := svc.Upload(context.Background(), UploadImageInput{
		ProductID:  1,
		UploaderID: 7,
		Content:    pngFixture(t, MaxImageDimension*2, MaxImageDimension),
	})
	require.NoError(t, err)

	assert.Equal(t, MaxImageDimension, stored.Width)
	assert.Equal(t, MaxImageDimension/2, stored.Height)
}

func TestImageService_UploadRejectsBadInput(t *testing.T) {
	t.Parallel()
	svc, _ := setupImageTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input UploadImageInput
	}{
		{"missing uploader", UploadImageInput{ProductID: 1, Content: pngFixture(t, 10, 10)}},
		{"empty file", UploadImageInput{ProductID: 1, UploaderID: 7}},
		{"not an image", UploadImageInput{ProductID: 1, UploaderID: 7, Content: []byte("plain text, not pixels")}},
		{"truncated image data", UploadImageInput{ProductID: 1, UploaderID: 7, Content: pngFixture(t, 10, 10)[:20]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := svc.Upload(ctx, tt.input)
			assert.Nil(t, img)

			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestImageService_ListForProduct(t *testing.T) {
	t.Parallel()
	svc, _ := setupImageTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Upload(ctx, UploadImageInput{ProductID: 5, UploaderID: 7, Content: pngFixture(t, 16, 16)})
		require.NoError(t, err)
	}
	_, err := svc.Upload(ctx, UploadImageInput{ProductID: 6, UploaderID: 7, Content: pngFixture(t, 16, 16)})
	require.NoError(t, err)

	list, err := svc.ListForProduct(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"net/http"

	"dentalreach/internal/models"
	"dentalreach/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// MaxUploadSizeBytes caps raw product photo uploads.
	MaxUploadSizeBytes = 10 * 1024 * 1024
	// MaxImageDimension is the longest edge after normalization.
	MaxImageDimension = 1600
	// WebPQuality is the lossy encode quality for stored images.
	WebPQuality = 80
)

// UploadImageInput carries an uploaded product photo.
type UploadImageInput struct {
	ProductID  uint
	UploaderID uint
	Content    []byte
}

// ImageService normalizes product photos to webp and persists them.
type ImageService struct {
	repo repository.ImageRepository
}

// NewImageService returns a new ImageService.
func NewImageService(repo repository.ImageRepository) *ImageService {
	return &ImageService{repo: repo}
}

// Upload validates, decodes, downscales and re-encodes the photo as webp,
// then stores it against the product.
func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (*models.ProductImage, error) {
	if in.UploaderID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if len(in.Content) > MaxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	switch detectedType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
	default:
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	normalized := resizeToFit(decoded, MaxImageDimension, MaxImageDimension)
	encoded, err := webp.EncodeRGBA(normalized, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	b := normalized.Bounds()
	img := &models.ProductImage{
		ProductID:   in.ProductID,
		UploaderID:  in.UploaderID,
		ContentType: "image/webp",
		Width:       b.Dx(),
		Height:      b.Dy(),
		SizeBytes:   len(encoded),
		Data:        encoded,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// Get returns a stored product photo including its binary data.
func (s *ImageService) Get(ctx context.Context, id uint) (*models.ProductImage, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForProduct returns photo metadata for a product.
func (s *ImageService) ListForProduct(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// resizeToFit scales down src so it fits within maxW x maxH, preserving
// aspect ratio. Images already inside the bounds are returned as-is after
// conversion to RGBA.
func resizeToFit(src image.Image, maxW, maxH int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxW && h <= maxH {
		out := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.Draw(out, out.Bounds(), src, b.Min, xdraw.Src)
		return out
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(out, out.Bounds(), src, b, xdraw.Over, nil)
	return out
}

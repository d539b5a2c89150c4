package server

import (
	"io"

	"dentalreach/internal/models"
	"dentalreach/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadProductImage handles POST /api/seller/products/:id/images
// Accepts a multipart "image" field, normalizes it to webp and stores it.
func (s *Server) UploadProductImage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, ok := s.requireApprovedSeller(c)
	if !ok {
		return nil
	}
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if product.SellerID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only upload images to your own products"))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An image file is required"))
	}
	if fileHeader.Size > service.MaxUploadSizeBytes {
		return models.RespondWithError(c, fiber.StatusRequestEntityTooLarge,
			models.NewValidationError("File too large"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, service.MaxUploadSizeBytes+1))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	image, err := s.imageService.Upload(ctx, service.UploadImageInput{
		ProductID:  productID,
		UploaderID: userID,
		Content:    content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// GetImage handles GET /api/images/:id and serves the stored webp bytes.
func (s *Server) GetImage(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	image, err := s.imageService.Get(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, image.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400, immutable")
	return c.Send(image.Data)
}

// GetProductImages handles GET /api/products/:id/images
// Returns image metadata only; bytes are served per-image.
func (s *Server) GetProductImages(c *fiber.Ctx) error {
	ctx := c.Context()
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	images, err := s.imageService.ListForProduct(ctx, productID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(images)
}

package server

import (
	"dentalreach/internal/models"
	"dentalreach/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ApplyAsSeller handles POST /api/seller/apply
// @Summary Apply to become a seller
// @Description Submits a seller application. One pending application at a time; three attempts lifetime.
// @Tags seller
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SellerApplyInput true "Application"
// @Success 201 {object} models.SellerApplication
// @Failure 409 {object} models.ErrorResponse
// @Router /seller/apply [post]
func (s *Server) ApplyAsSeller(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req service.SellerApplyInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	application, err := s.sellerService.Apply(ctx, userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

// GetSellerStatus handles GET /api/seller/status
// @Summary Seller status for the profile gate
// @Tags seller
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SellerStatusView
// @Router /seller/status [get]
func (s *Server) GetSellerStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	view, err := s.sellerService.Status(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// GetMySellerApplication handles GET /api/seller/application
func (s *Server) GetMySellerApplication(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	application, err := s.sellerService.MyApplication(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if application == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Seller application", userID))
	}
	return c.JSON(application)
}

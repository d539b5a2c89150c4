package server

import (
	"dentalreach/internal/middleware"
	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSellerApplications handles GET /api/admin/seller-applications?status=pending
// @Summary List seller applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending|approved|rejected)"
// @Success 200 {object} object{applications=[]models.SellerApplication,total_count=int}
// @Router /admin/seller-applications [get]
func (s *Server) GetSellerApplications(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	status := models.SellerApplicationStatus(c.Query("status"))
	switch status {
	case "", models.SellerApplicationStatusPending,
		models.SellerApplicationStatusApproved,
		models.SellerApplicationStatusRejected:
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown status filter"))
	}

	applications, total, err := s.sellerService.ListApplications(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"applications": applications,
		"total_count":  total,
	})
}

// ApproveSellerApplication handles POST /api/admin/seller-applications/:id/approve
// @Summary Approve a seller application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body object{admin_notes=string} false "Notes"
// @Success 200 {object} models.SellerApplication
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/seller-applications/{id}/approve [post]
func (s *Server) ApproveSellerApplication(c *fiber.Ctx) error {
	return s.decideSellerApplication(c, true)
}

// RejectSellerApplication handles POST /api/admin/seller-applications/:id/reject
// @Summary Reject a seller application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body object{admin_notes=string} false "Rejection reason"
// @Success 200 {object} models.SellerApplication
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/seller-applications/{id}/reject [post]
func (s *Server) RejectSellerApplication(c *fiber.Ctx) error {
	return s.decideSellerApplication(c, false)
}

func (s *Server) decideSellerApplication(c *fiber.Ctx, approve bool) error {
	ctx := c.Context()
	reviewerID := c.Locals("userID").(uint)
	applicationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		AdminNotes string `json:"admin_notes"`
	}
	_ = c.BodyParser(&req)

	application, notification, err := s.sellerService.Decide(
		ctx, applicationID, reviewerID, approve, req.AdminNotes)
	if err != nil {
		return respondServiceError(c, err)
	}

	outcome := "rejected"
	if approve {
		outcome = "approved"
	}
	middleware.SellerDecisions.WithLabelValues(outcome).Inc()

	// The notification row committed with the decision; the realtime nudge is
	// best-effort on top of it.
	s.notifyNotificationCreated(application.UserID, notification.ID, string(notification.Type))

	return c.JSON(application)
}

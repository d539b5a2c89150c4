package server

import (
	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfileReviews handles GET /api/profiles/:id/reviews
func (s *Server) GetProfileReviews(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	reviews, err := s.reviewService.ListReviews(ctx, profileID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	reputation, err := s.reviewService.Reputation(ctx, profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"reviews":    reviews,
		"reputation": reputation,
	})
}

// GetMyReviewStatus handles GET /api/profiles/:id/reviews/me
// Tells the caller whether they already reviewed this profile, so the UI can
// hide the form. The unique index remains the authoritative guard.
func (s *Server) GetMyReviewStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	profileID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reviewed, err := s.reviewService.HasReviewed(ctx, profileID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"has_reviewed": reviewed})
}

// CreateProfileReview handles POST /api/profiles/:id/reviews
// @Summary Review a profile
// @Description Submits a 1-5 rating of another user's profile. One review per rater per profile.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile user ID"
// @Param request body object{rating=int,comment=string} true "Review"
// @Success 201 {object} models.ProfileReview
// @Failure 409 {object} models.ErrorResponse
// @Router /profiles/{id}/reviews [post]
func (s *Server) CreateProfileReview(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	profileID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.AddReview(ctx, profileID, userID, req.Rating, req.Comment)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

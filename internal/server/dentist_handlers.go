package server

import (
	"strings"

	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDentists handles GET /api/dentists?page=N&q=...&specialty=...
func (s *Server) GetDentists(c *fiber.Ctx) error {
	ctx := c.Context()
	page, offset := parsePage(c, dentistsPerPage)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_dentist = ?", true).
		Count(&total).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var dentists []models.User
	if err := s.db.WithContext(ctx).
		Where("is_dentist = ?", true).
		Order("created_at DESC").
		Limit(dentistsPerPage).
		Offset(offset).
		Find(&dentists).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	q := c.Query("q")
	specialty := c.Query("specialty")
	filtered := make([]models.User, 0, len(dentists))
	for _, d := range dentists {
		if matchesQuery(q, d.Username, d.FullName, d.ClinicName) &&
			matchesCategory(specialty, d.Specialty) {
			filtered = append(filtered, d)
		}
	}

	return c.JSON(fiber.Map{
		"dentists": filtered,
		"meta":     buildListMeta(total, page, dentistsPerPage),
	})
}

// SearchDentists handles GET /api/dentists/search?q=...
// Unlike the listing filters, search pushes the query into SQL.
func (s *Server) SearchDentists(c *fiber.Ctx) error {
	ctx := c.Context()
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}
	page := parsePagination(c, 20)

	users, err := s.userRepo.Search(ctx, q, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(users)
}

// GetDentist handles GET /api/dentists/:id
func (s *Server) GetDentist(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !user.IsDentist {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Dentist", id))
	}
	return c.JSON(user)
}

// GetDentistArticles handles GET /api/dentists/:id/articles
func (s *Server) GetDentistArticles(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)

	articles, err := s.articleRepo.ListByAuthor(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	approved := articles[:0]
	for _, a := range articles {
		if a.IsApproved {
			approved = append(approved, a)
		}
	}
	return c.JSON(approved)
}

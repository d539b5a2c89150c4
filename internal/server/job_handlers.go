package server

import (
	"errors"
	"strings"

	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetJobs handles GET /api/jobs?page=N&q=...&type=...
func (s *Server) GetJobs(c *fiber.Ctx) error {
	ctx := c.Context()
	page, offset := parsePage(c, jobsPerPage)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.JobListing{}).Count(&total).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var jobs []*models.JobListing
	if err := s.db.WithContext(ctx).
		Preload("PostedBy").
		Order("created_at DESC").
		Limit(jobsPerPage).
		Offset(offset).
		Find(&jobs).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	q := c.Query("q")
	employmentType := c.Query("type")
	filtered := make([]*models.JobListing, 0, len(jobs))
	for _, j := range jobs {
		if matchesQuery(q, j.Title, j.ClinicName, j.Location) &&
			matchesCategory(employmentType, j.EmploymentType) {
			filtered = append(filtered, j)
		}
	}

	return c.JSON(fiber.Map{
		"jobs": filtered,
		"meta": buildListMeta(total, page, jobsPerPage),
	})
}

// GetJob handles GET /api/jobs/:id
func (s *Server) GetJob(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var job models.JobListing
	if err := s.db.WithContext(ctx).Preload("PostedBy").First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("JobListing", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(job)
}

// CreateJob handles POST /api/jobs
func (s *Server) CreateJob(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title          string `json:"title"`
		ClinicName     string `json:"clinic_name"`
		Location       string `json:"location"`
		EmploymentType string `json:"employment_type"`
		Description    string `json:"description"`
		SalaryMin      int    `json:"salary_min"`
		SalaryMax      int    `json:"salary_max"`
		ContactEmail   string `json:"contact_email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ClinicName) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and clinic name are required"))
	}
	if req.SalaryMin < 0 || (req.SalaryMax > 0 && req.SalaryMax < req.SalaryMin) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid salary range"))
	}

	job := &models.JobListing{
		Title:          req.Title,
		ClinicName:     req.ClinicName,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Description:    req.Description,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		ContactEmail:   req.ContactEmail,
		PostedByID:     userID,
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// DeleteJob handles DELETE /api/jobs/:id
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var job models.JobListing
	if err := s.db.WithContext(ctx).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("JobListing", jobID))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Check ownership or admin status
	if job.PostedByID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, adminErr)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You can only delete your own job listings"))
		}
	}

	if err := s.db.WithContext(ctx).Delete(&job).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

package server

import (
	"errors"
	"strings"
	"time"

	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetEvents handles GET /api/events?page=N&q=...&type=...
func (s *Server) GetEvents(c *fiber.Ctx) error {
	ctx := c.Context()
	page, offset := parsePage(c, eventsPerPage)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("status = ?", models.EventStatusUpcoming).
		Count(&total).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var events []*models.Event
	if err := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Select("events.*, (SELECT COUNT(*) FROM event_registrations r WHERE r.event_id = events.id AND r.status = ?) AS registered_count",
			models.EventRegistrationRegistered).
		Where("status = ?", models.EventStatusUpcoming).
		Order("date ASC").
		Limit(eventsPerPage).
		Offset(offset).
		Find(&events).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	q := c.Query("q")
	eventType := c.Query("type")
	filtered := make([]*models.Event, 0, len(events))
	for _, e := range events {
		if matchesQuery(q, e.Title, e.Description) && matchesCategory(eventType, e.EventType) {
			filtered = append(filtered, e)
		}
	}

	return c.JSON(fiber.Map{
		"events": filtered,
		"meta":   buildListMeta(total, page, eventsPerPage),
	})
}

// GetEvent handles GET /api/events/:id
func (s *Server) GetEvent(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var event models.Event
	if err := s.db.WithContext(ctx).
		Select("events.*, (SELECT COUNT(*) FROM event_registrations r WHERE r.event_id = events.id AND r.status = ?) AS registered_count",
			models.EventRegistrationRegistered).
		Preload("CreatedBy").
		First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Event", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(event)
}

// CreateEvent handles POST /api/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		EventType   string     `json:"event_type"`
		Location    string     `json:"location"`
		IsVirtual   bool       `json:"is_virtual"`
		Date        time.Time  `json:"date"`
		EndDate     *time.Time `json:"end_date,omitempty"`
		Image       string     `json:"image,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Title) == "" || req.Date.IsZero() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and date are required"))
	}
	if req.EndDate != nil && req.EndDate.Before(req.Date) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("End date cannot be before the start date"))
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		Location:    req.Location,
		IsVirtual:   req.IsVirtual,
		Date:        req.Date,
		EndDate:     req.EndDate,
		Status:      models.EventStatusUpcoming,
		Image:       req.Image,
		CreatedByID: userID,
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishBroadcastEvent(EventEventUpdated, fiber.Map{"event_id": event.ID})

	return c.Status(fiber.StatusCreated).JSON(event)
}

// RegisterForEvent handles POST /api/events/:id/register
func (s *Server) RegisterForEvent(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Event", eventID))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if event.Status != models.EventStatusUpcoming {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Registration is closed for this event"))
	}

	// A cancelled registration can be re-activated; the unique index keeps
	// one row per (event, user).
	var existing models.EventRegistration
	findErr := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&existing).Error
	switch {
	case findErr == nil:
		if existing.Status == models.EventRegistrationRegistered {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("You are already registered for this event"))
		}
		existing.Status = models.EventRegistrationRegistered
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(existing)
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		registration := &models.EventRegistration{
			EventID: eventID,
			UserID:  userID,
			Status:  models.EventRegistrationRegistered,
		}
		if err := s.db.WithContext(ctx).Create(registration).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return c.Status(fiber.StatusCreated).JSON(registration)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError, findErr)
	}
}

// CancelEventRegistration handles DELETE /api/events/:id/register
func (s *Server) CancelEventRegistration(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result := s.db.WithContext(ctx).Model(&models.EventRegistration{}).
		Where("event_id = ? AND user_id = ? AND status = ?",
			eventID, userID, models.EventRegistrationRegistered).
		Update("status", models.EventRegistrationCancelled)
	if result.Error != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("EventRegistration", eventID))
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyEventRegistrations handles GET /api/events/mine/registrations
func (s *Server) GetMyEventRegistrations(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var registrations []*models.EventRegistration
	if err := s.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ? AND status = ?", userID, models.EventRegistrationRegistered).
		Order("created_at DESC").
		Find(&registrations).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(registrations)
}

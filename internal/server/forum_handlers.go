package server

import (
	"errors"
	"strings"

	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetThreads handles GET /api/threads?page=N&q=...&category=...
func (s *Server) GetThreads(c *fiber.Ctx) error {
	ctx := c.Context()
	page, offset := parsePage(c, threadsPerPage)

	db := s.db.WithContext(ctx).Model(&models.Thread{})
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var threads []*models.Thread
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(threadsPerPage).
		Offset(offset).
		Find(&threads).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	q := c.Query("q")
	category := c.Query("category")
	filtered := make([]*models.Thread, 0, len(threads))
	for _, t := range threads {
		if matchesQuery(q, t.Title, t.Content) && matchesCategory(category, t.Category) {
			filtered = append(filtered, t)
		}
	}

	return c.JSON(fiber.Map{
		"threads": filtered,
		"meta":    buildListMeta(total, page, threadsPerPage),
	})
}

// GetThread handles GET /api/threads/:id
func (s *Server) GetThread(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var thread models.Thread
	if err := s.db.WithContext(ctx).Preload("Author").First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Thread", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(thread)
}

// GetThreadReplies handles GET /api/threads/:id/replies
func (s *Server) GetThreadReplies(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	var replies []*models.ForumPost
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("thread_id = ?", id).
		Order("created_at ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&replies).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(replies)
}

// CreateThread handles POST /api/threads
func (s *Server) CreateThread(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	thread := &models.Thread{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		AuthorID: userID,
	}
	if err := s.db.WithContext(ctx).Create(thread).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(thread)
}

// CreateThreadReply handles POST /api/threads/:id/replies
func (s *Server) CreateThreadReply(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	threadID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	reply := &models.ForumPost{
		ThreadID: threadID,
		AuthorID: userID,
		Content:  req.Content,
	}

	// The reply row and the thread counter move together.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.Select("id").First(&thread, threadID).Error; err != nil {
			return err
		}
		if err := tx.Create(reply).Error; err != nil {
			return err
		}
		return tx.Model(&models.Thread{}).
			Where("id = ?", threadID).
			Update("reply_count", gorm.Expr("reply_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Thread", threadID))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}

// DeleteThread handles DELETE /api/threads/:id
func (s *Server) DeleteThread(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	threadID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var thread models.Thread
	if err := s.db.WithContext(ctx).First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Thread", threadID))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Check ownership or admin status
	if thread.AuthorID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, adminErr)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You can only delete your own threads"))
		}
	}

	if err := s.db.WithContext(ctx).Delete(&thread).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

package server

import (
	"strings"

	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetArticles handles GET /api/articles?page=N&q=...&category=...&year=...
// @Summary List approved articles
// @Description Returns one page of approved articles, newest first. The q, category and year filters narrow the fetched page only.
// @Tags articles
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param q query string false "Free-text filter within the page"
// @Param category query string false "Category filter within the page"
// @Param year query int false "Publication year filter within the page"
// @Success 200 {object} object{articles=[]models.Article,meta=ListMeta}
// @Router /articles [get]
func (s *Server) GetArticles(c *fiber.Ctx) error {
	ctx := c.Context()
	page, offset := parsePage(c, articlesPerPage)

	articles, total, err := s.articleRepo.ListApproved(ctx, articlesPerPage, offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Filters narrow only the page that was fetched; the pagination meta
	// keeps describing the unfiltered collection.
	q := c.Query("q")
	category := c.Query("category")
	year := c.QueryInt("year", 0)
	filtered := make([]*models.Article, 0, len(articles))
	for _, a := range articles {
		if matchesQuery(q, a.Title, a.Excerpt) &&
			matchesCategory(category, a.Category) &&
			matchesYear(year, a.CreatedAt) {
			filtered = append(filtered, a)
		}
	}

	return c.JSON(fiber.Map{
		"articles": filtered,
		"meta":     buildListMeta(total, page, articlesPerPage),
	})
}

// GetArticle handles GET /api/articles/:id
// @Summary Get article detail
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} models.ErrorResponse
// @Router /articles/{id} [get]
func (s *Server) GetArticle(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Unapproved drafts are visible to their author and to admins only.
	if !article.IsApproved {
		userID, ok := s.optionalUserID(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Article", id))
		}
		if userID != article.AuthorID {
			admin, adminErr := s.isAdmin(c, userID)
			if adminErr != nil || !admin {
				return models.RespondWithError(c, fiber.StatusNotFound,
					models.NewNotFoundError("Article", id))
			}
		}
	}

	return c.JSON(article)
}

// GetJournals handles GET /api/journals
// @Summary List journal issues
// @Tags articles
// @Produce json
// @Success 200 {array} models.Journal
// @Router /journals [get]
func (s *Server) GetJournals(c *fiber.Ctx) error {
	journals, err := s.articleRepo.ListJournals(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(journals)
}

// CreateArticle handles POST /api/articles
// @Summary Submit an article
// @Description Creates an article draft awaiting editorial approval
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,excerpt=string,content=string,category=string,cover_image=string,journal_id=int} true "Article"
// @Success 201 {object} models.Article
// @Failure 400 {object} models.ErrorResponse
// @Router /articles [post]
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title      string `json:"title"`
		Excerpt    string `json:"excerpt"`
		Content    string `json:"content"`
		Category   string `json:"category"`
		CoverImage string `json:"cover_image,omitempty"`
		JournalID  *uint  `json:"journal_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	article := &models.Article{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		Category:   req.Category,
		CoverImage: req.CoverImage,
		JournalID:  req.JournalID,
		AuthorID:   userID,
		IsApproved: false,
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(article)
}

// GetMyArticles handles GET /api/articles/mine/list
func (s *Server) GetMyArticles(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 20)

	articles, err := s.articleRepo.ListByAuthor(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(articles)
}

// UpdateArticle handles PUT /api/articles/:id
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title      string `json:"title"`
		Excerpt    string `json:"excerpt"`
		Content    string `json:"content"`
		Category   string `json:"category"`
		CoverImage string `json:"cover_image,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Check ownership
	if article.AuthorID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only update your own articles"))
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Excerpt != "" {
		article.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		article.Content = req.Content
	}
	if req.Category != "" {
		article.Category = req.Category
	}
	if req.CoverImage != "" {
		article.CoverImage = req.CoverImage
	}
	// Edits go back through review.
	article.IsApproved = false

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(article)
}

// DeleteArticle handles DELETE /api/articles/:id
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Check ownership or admin status
	if article.AuthorID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, adminErr)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You can only delete your own articles"))
		}
	}

	if err := s.articleRepo.Delete(ctx, articleID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetPendingArticles handles GET /api/admin/articles/pending
func (s *Server) GetPendingArticles(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	articles, total, err := s.articleRepo.ListPendingReview(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{
		"articles":    articles,
		"total_count": total,
	})
}

// ApproveArticle handles POST /api/admin/articles/:id/approve
func (s *Server) ApproveArticle(c *fiber.Ctx) error {
	return s.reviewArticle(c, true)
}

// RejectArticle handles POST /api/admin/articles/:id/reject
func (s *Server) RejectArticle(c *fiber.Ctx) error {
	return s.reviewArticle(c, false)
}

func (s *Server) reviewArticle(c *fiber.Ctx, approve bool) error {
	ctx := c.Context()
	articleID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = c.BodyParser(&req)

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return respondServiceError(c, err)
	}

	article.IsApproved = approve
	article.ReviewNote = req.Note
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	notification := &models.Notification{
		UserID: article.AuthorID,
	}
	if approve {
		notification.Type = models.NotificationArticleApproved
		notification.Message = "Your article \"" + article.Title + "\" has been approved and published."
	} else {
		notification.Type = models.NotificationArticleRejected
		notification.Message = "Your article \"" + article.Title + "\" was not approved."
		if req.Note != "" {
			notification.Message += " Reason: " + req.Note
			notification.Reason = req.Note
		}
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	s.notifyNotificationCreated(article.AuthorID, notification.ID, string(notification.Type))
	if approve {
		s.publishBroadcastEvent(EventArticleApproved, fiber.Map{"article_id": article.ID})
	}

	return c.JSON(article)
}

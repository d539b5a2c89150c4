package server

import (
	"context"

	"dentalreach/internal/middleware"
	"dentalreach/internal/models"
	"dentalreach/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const profileSectionLimit = 10

// ProfileAggregate bundles everything the profile page renders in one
// response. Sections other than the user itself degrade to empty on failure.
type ProfileAggregate struct {
	User         *models.User           `json:"user"`
	Articles     []*models.Article      `json:"articles"`
	Reviews      []models.ProfileReview `json:"reviews"`
	Reputation   *models.Reputation     `json:"reputation,omitempty"`
	Achievements []models.Achievement   `json:"achievements"`
	Courses      []models.Course        `json:"courses"`
	Threads      []*models.Thread       `json:"threads"`
	PostCount    int64                  `json:"post_count"`
	Products     []*models.Product      `json:"products"`
}

// GetProfileAggregate handles GET /api/profiles/:id
// @Summary Aggregated profile page
// @Description Fetches the profile and all its sections concurrently. Only a missing profile fails the request; a failed section comes back empty.
// @Tags profiles
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} ProfileAggregate
// @Failure 404 {object} models.ErrorResponse
// @Router /profiles/{id} [get]
func (s *Server) GetProfileAggregate(c *fiber.Ctx) error {
	ctx := c.Context()
	profileID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	agg := &ProfileAggregate{
		Articles:     []*models.Article{},
		Reviews:      []models.ProfileReview{},
		Achievements: []models.Achievement{},
		Courses:      []models.Course{},
		Threads:      []*models.Thread{},
		Products:     []*models.Product{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.userRepo.GetByID(gctx, profileID)
		if err != nil {
			return err
		}
		agg.User = user
		return nil
	})
	g.Go(func() error {
		articles, err := s.articleRepo.ListByAuthor(gctx, profileID, profileSectionLimit, 0)
		if err != nil {
			s.logSectionError(gctx, "articles", profileID, err)
			return nil
		}
		approved := articles[:0]
		for _, a := range articles {
			if a.IsApproved {
				approved = append(approved, a)
			}
		}
		agg.Articles = approved
		return nil
	})
	g.Go(func() error {
		reviews, err := s.reviewService.ListReviews(gctx, profileID, profileSectionLimit, 0)
		if err != nil {
			s.logSectionError(gctx, "reviews", profileID, err)
			return nil
		}
		agg.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		reputation, err := s.reviewService.Reputation(gctx, profileID)
		if err != nil {
			s.logSectionError(gctx, "reputation", profileID, err)
			return nil
		}
		agg.Reputation = reputation
		return nil
	})
	g.Go(func() error {
		var achievements []models.Achievement
		if err := s.db.WithContext(gctx).
			Where("user_id = ?", profileID).
			Order("year DESC").
			Limit(profileSectionLimit).
			Find(&achievements).Error; err != nil {
			s.logSectionError(gctx, "achievements", profileID, err)
			return nil
		}
		agg.Achievements = achievements
		return nil
	})
	g.Go(func() error {
		var courses []models.Course
		if err := s.db.WithContext(gctx).
			Where("user_id = ?", profileID).
			Order("created_at DESC").
			Limit(profileSectionLimit).
			Find(&courses).Error; err != nil {
			s.logSectionError(gctx, "courses", profileID, err)
			return nil
		}
		agg.Courses = courses
		return nil
	})
	g.Go(func() error {
		var threads []*models.Thread
		if err := s.db.WithContext(gctx).
			Where("author_id = ?", profileID).
			Order("created_at DESC").
			Limit(profileSectionLimit).
			Find(&threads).Error; err != nil {
			s.logSectionError(gctx, "threads", profileID, err)
			return nil
		}
		agg.Threads = threads
		return nil
	})
	g.Go(func() error {
		// Threads started plus replies written.
		var threadCount, replyCount int64
		if err := s.db.WithContext(gctx).Model(&models.Thread{}).
			Where("author_id = ?", profileID).
			Count(&threadCount).Error; err != nil {
			s.logSectionError(gctx, "post_count", profileID, err)
			return nil
		}
		if err := s.db.WithContext(gctx).Model(&models.ForumPost{}).
			Where("author_id = ?", profileID).
			Count(&replyCount).Error; err != nil {
			s.logSectionError(gctx, "post_count", profileID, err)
			return nil
		}
		agg.PostCount = threadCount + replyCount
		return nil
	})
	g.Go(func() error {
		var products []*models.Product
		if err := s.db.WithContext(gctx).
			Where("seller_id = ? AND admin_approved = ? AND is_active = ?",
				profileID, true, true).
			Order("created_at DESC").
			Limit(profileSectionLimit).
			Find(&products).Error; err != nil {
			s.logSectionError(gctx, "products", profileID, err)
			return nil
		}
		agg.Products = products
		return nil
	})

	if err := g.Wait(); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(agg)
}

func (s *Server) logSectionError(ctx context.Context, section string, profileID uint, err error) {
	middleware.Logger.WarnContext(ctx, "profile section failed",
		"section", section,
		"profile_id", profileID,
		"error", err,
	)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Username          string   `json:"username"`
		FullName          string   `json:"full_name"`
		Title             string   `json:"title"`
		Bio               string   `json:"bio"`
		Avatar            string   `json:"avatar"`
		Specialty         string   `json:"specialty"`
		ClinicName        string   `json:"clinic_name"`
		City              string   `json:"city"`
		Country           string   `json:"country"`
		Phone             string   `json:"phone"`
		Website           string   `json:"website"`
		YearsOfExperience *int     `json:"years_of_experience,omitempty"`
		ResearchInterests []string `json:"research_interests,omitempty"`
		Certifications    []string `json:"certifications,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:            userID,
		Username:          req.Username,
		FullName:          req.FullName,
		Title:             req.Title,
		Bio:               req.Bio,
		Avatar:            req.Avatar,
		Specialty:         req.Specialty,
		ClinicName:        req.ClinicName,
		City:              req.City,
		Country:           req.Country,
		Phone:             req.Phone,
		Website:           req.Website,
		YearsOfExperience: req.YearsOfExperience,
		ResearchInterests: req.ResearchInterests,
		Certifications:    req.Certifications,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	return s.setAdminFlag(c, true)
}

// DemoteFromAdmin handles POST /api/users/:id/demote-admin
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	return s.setAdminFlag(c, false)
}

func (s *Server) setAdminFlag(c *fiber.Ctx, promote bool) error {
	ctx := c.Context()
	callerID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if !promote && callerID == targetID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot demote yourself"))
	}

	user, err := s.userService.SetAdmin(ctx, targetID, promote)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

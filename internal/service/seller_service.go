// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dentalreach/internal/cache"
	"dentalreach/internal/models"
	"dentalreach/internal/validation"

	"gorm.io/gorm"
)

// SellerApplyInput carries the fields of a new seller application.
type SellerApplyInput struct {
	BusinessName       string   `json:"business_name"`
	BusinessType       string   `json:"business_type"`
	BusinessAddress    string   `json:"business_address"`
	BusinessPhone      string   `json:"business_phone"`
	BusinessEmail      string   `json:"business_email"`
	TaxID              string   `json:"tax_id"`
	BusinessLicense    string   `json:"business_license"`
	BankAccountDetails string   `json:"bank_account_details"`
	ExperienceYears    int      `json:"experience_years"`
	ProductCategories  []string `json:"product_categories"`
}

// SellerStatusView is the seller state the profile UI keys its gate on.
type SellerStatusView struct {
	IsSeller          bool                `json:"is_seller"`
	SellerStatus      models.SellerStatus `json:"seller_status"`
	ApplicationCount  int                 `json:"application_count"`
	LastRejectionDate *time.Time          `json:"last_rejection_date,omitempty"`
	CanReapply        bool                `json:"can_reapply"`
	LastChance        bool                `json:"last_chance"`
	LimitReached      bool                `json:"limit_reached"`
}

// SellerService implements the marketplace seller application workflow.
type SellerService struct {
	db *gorm.DB
}

// NewSellerService returns a new SellerService.
func NewSellerService(db *gorm.DB) *SellerService {
	return &SellerService{db: db}
}

// Apply submits a seller application for userID. A user may hold at most one
// pending application, and at most three applications over the account's
// lifetime.
func (s *SellerService) Apply(ctx context.Context, userID uint, in SellerApplyInput) (*models.SellerApplication, error) {
	if err := validation.ValidateSellerApplication(validation.SellerApplicationInput{
		BusinessName:      in.BusinessName,
		BusinessType:      in.BusinessType,
		BusinessEmail:     in.BusinessEmail,
		ProductCategories: in.ProductCategories,
		ExperienceYears:   in.ExperienceYears,
	}); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	var application *models.SellerApplication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", userID)
			}
			return models.NewInternalError(err)
		}

		var pendingCount int64
		if err := tx.Model(&models.SellerApplication{}).
			Where("user_id = ? AND status = ?", userID, models.SellerApplicationStatusPending).
			Count(&pendingCount).Error; err != nil {
			return models.NewInternalError(err)
		}
		if pendingCount > 0 {
			return models.NewConflictError("You already have a pending seller application")
		}

		if !user.CanReapply() {
			return models.NewValidationError("Application limit reached")
		}

		application = &models.SellerApplication{
			UserID:             userID,
			BusinessName:       in.BusinessName,
			BusinessType:       in.BusinessType,
			BusinessAddress:    in.BusinessAddress,
			BusinessPhone:      in.BusinessPhone,
			BusinessEmail:      in.BusinessEmail,
			TaxID:              in.TaxID,
			BusinessLicense:    in.BusinessLicense,
			BankAccountDetails: in.BankAccountDetails,
			ExperienceYears:    in.ExperienceYears,
			ProductCategories:  in.ProductCategories,
			Status:             models.SellerApplicationStatusPending,
		}
		if err := tx.Create(application).Error; err != nil {
			return models.NewInternalError(err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"seller_status":     models.SellerStatusPending,
				"seller_applied_at": now,
			}).Error; err != nil {
			return models.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	// The transaction touched the users row behind the repository's back.
	cache.InvalidateUser(ctx, userID)
	return application, nil
}

// Decide resolves a pending application. The application update, the profile
// update and the notification insert commit or roll back together. Only
// pending applications may be decided; corrections happen through a fresh
// application, never by re-deciding.
func (s *SellerService) Decide(
	ctx context.Context, applicationID, reviewerID uint, approve bool, adminNotes string,
) (*models.SellerApplication, *models.Notification, error) {
	if !approve && strings.TrimSpace(adminNotes) == "" {
		return nil, nil, models.NewValidationError("A rejection reason is required")
	}

	var application models.SellerApplication
	var notification models.Notification

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&application, applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Seller application", applicationID)
			}
			return models.NewInternalError(err)
		}
		if application.Status != models.SellerApplicationStatusPending {
			return models.NewConflictError("Application has already been decided")
		}

		status := models.SellerApplicationStatusRejected
		if approve {
			status = models.SellerApplicationStatusApproved
		}
		if err := tx.Model(&application).Updates(map[string]interface{}{
			"status":              status,
			"admin_notes":         adminNotes,
			"reviewed_by_user_id": reviewerID,
		}).Error; err != nil {
			return models.NewInternalError(err)
		}
		application.Status = status
		application.AdminNotes = adminNotes
		application.ReviewedByUserID = &reviewerID

		if approve {
			if err := tx.Model(&models.User{}).
				Where("id = ?", application.UserID).
				Updates(map[string]interface{}{
					"is_seller":     true,
					"seller_status": models.SellerStatusApproved,
				}).Error; err != nil {
				return models.NewInternalError(err)
			}
		} else {
			// The counter increments in the database so concurrent decisions
			// cannot lose an attempt.
			if err := tx.Model(&models.User{}).
				Where("id = ?", application.UserID).
				Updates(map[string]interface{}{
					"is_seller":           false,
					"seller_status":       models.SellerStatusRejected,
					"application_count":   gorm.Expr("application_count + 1"),
					"last_rejection_date": time.Now().UTC(),
				}).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		notification = models.Notification{
			UserID: application.UserID,
			Read:   false,
		}
		if approve {
			notification.Type = models.NotificationApplicationApproved
			notification.Message = fmt.Sprintf(
				"Congratulations! Your seller application for %q has been approved. You can now start selling products on our platform.",
				application.BusinessName,
			)
		} else {
			notification.Type = models.NotificationApplicationRejected
			notification.Message = fmt.Sprintf(
				"Your seller application for %q has been rejected. Reason: %s",
				application.BusinessName, adminNotes,
			)
			notification.Reason = adminNotes
		}
		if err := tx.Create(&notification).Error; err != nil {
			return models.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	// Both writes happened inside the transaction rather than through the
	// repositories, so their cache entries are dropped here. A profile read
	// after the commit must see the new seller flags, and the bell re-fetch
	// triggered by the realtime nudge must count the new notification.
	cache.InvalidateUser(ctx, application.UserID)
	cache.InvalidateUnreadCount(ctx, application.UserID)
	return &application, &notification, nil
}

// Status returns the seller state for a user's profile gate.
func (s *SellerService) Status(ctx context.Context, userID uint) (*SellerStatusView, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, models.NewInternalError(err)
	}

	view := &SellerStatusView{
		IsSeller:          user.IsSeller,
		SellerStatus:      user.SellerStatus,
		ApplicationCount:  user.ApplicationCount,
		LastRejectionDate: user.LastRejectionDate,
		LimitReached:      !user.CanReapply(),
	}
	if user.SellerStatus == models.SellerStatusRejected {
		view.CanReapply = user.CanReapply()
		view.LastChance = user.LastChance()
	}
	return view, nil
}

// MyApplication returns the user's most recent application, or nil when the
// user never applied.
func (s *SellerService) MyApplication(ctx context.Context, userID uint) (*models.SellerApplication, error) {
	var application models.SellerApplication
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &application, nil
}

// ListApplications returns applications for the admin review queue, optionally
// filtered by status.
func (s *SellerService) ListApplications(
	ctx context.Context, status models.SellerApplicationStatus, limit, offset int,
) ([]models.SellerApplication, int64, error) {
	db := s.db.WithContext(ctx).Model(&models.SellerApplication{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var applications []models.SellerApplication
	if err := db.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&applications).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return applications, total, nil
}

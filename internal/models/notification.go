package models

import "time"

// NotificationType distinguishes notification feeds on the bell icon.
type NotificationType string

const (
	// NotificationApplicationApproved is sent when a seller application is approved.
	NotificationApplicationApproved NotificationType = "application_approved"
	// NotificationApplicationRejected is sent when a seller application is rejected.
	NotificationApplicationRejected NotificationType = "application_rejected"
	// NotificationArticleApproved is sent when an article passes review.
	NotificationArticleApproved NotificationType = "article_approved"
	// NotificationArticleRejected is sent when an article fails review.
	NotificationArticleRejected NotificationType = "article_rejected"
	// NotificationEventReminder is sent ahead of a registered event.
	NotificationEventReminder NotificationType = "event_reminder"
	// NotificationProductApproved is sent when a product listing passes review.
	NotificationProductApproved NotificationType = "product_approved"
	// NotificationProductRejected is sent when a product listing fails review.
	NotificationProductRejected NotificationType = "product_rejected"
)

// Notification is a single entry in a user's notification feed.
type Notification struct {
	ID      uint             `gorm:"primaryKey" json:"id"`
	UserID  uint             `gorm:"not null;index" json:"user_id"`
	Type    NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Message string           `gorm:"type:text;not null" json:"message"`
	// Reason carries the admin notes on rejection outcomes.
	Reason    string    `gorm:"type:text" json:"reason,omitempty"`
	Read      bool      `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

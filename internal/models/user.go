// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// SellerStatus tracks a user's position in the marketplace seller lifecycle.
type SellerStatus string

const (
	// SellerStatusNone indicates the user never applied to sell.
	SellerStatusNone SellerStatus = "none"
	// SellerStatusPending indicates a seller application awaiting review.
	SellerStatusPending SellerStatus = "pending"
	// SellerStatusApproved indicates the user may sell on the marketplace.
	SellerStatusApproved SellerStatus = "approved"
	// SellerStatusRejected indicates the most recent application was denied.
	SellerStatusRejected SellerStatus = "rejected"
)

// MaxSellerApplications is the lifetime cap on seller applications per user.
const MaxSellerApplications = 3

// User represents a dental professional's account and public profile.
// Seller state is denormalized here so the marketplace gate is one read.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `gorm:"size:120" json:"full_name"`
	Title    string `gorm:"size:120" json:"title"`
	Bio      string `gorm:"type:text" json:"bio"`
	Avatar   string `json:"avatar"`

	// Professional profile
	Specialty         string  `gorm:"size:120" json:"specialty"`
	ClinicName        string  `gorm:"size:160" json:"clinic_name"`
	City              string  `gorm:"size:120" json:"city"`
	Country           string  `gorm:"size:120" json:"country"`
	Phone             string  `gorm:"size:32" json:"phone"`
	Website           string  `json:"website"`
	YearsOfExperience int     `json:"years_of_experience"`
	ResearchInterests Strings `gorm:"type:text" json:"research_interests"`
	Certifications    Strings `gorm:"type:text" json:"certifications"`
	IsDentist         bool    `gorm:"index" json:"is_dentist"`

	IsAdmin bool `gorm:"default:false" json:"is_admin"`

	// Denormalized seller state. IsSeller is true only while the most
	// recent application is approved.
	IsSeller          bool         `gorm:"default:false" json:"is_seller"`
	SellerStatus      SellerStatus `gorm:"type:varchar(20);not null;default:'none'" json:"seller_status"`
	ApplicationCount  int          `gorm:"default:0" json:"application_count"`
	LastRejectionDate *time.Time   `json:"last_rejection_date,omitempty"`
	SellerAppliedAt   *time.Time   `json:"seller_applied_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Articles []Article `gorm:"foreignKey:AuthorID" json:"articles,omitempty"`
}

// CanReapply reports whether another seller application may be submitted.
func (u *User) CanReapply() bool {
	return u.ApplicationCount < MaxSellerApplications
}

// LastChance reports whether the next application is the user's final attempt.
func (u *User) LastChance() bool {
	return u.ApplicationCount == MaxSellerApplications-1
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// JobListing is an open position posted by a clinic or practice.
type JobListing struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Title          string `gorm:"not null" json:"title"`
	ClinicName     string `gorm:"size:160" json:"clinic_name"`
	Location       string `gorm:"size:160" json:"location"`
	EmploymentType string `gorm:"size:40;index" json:"employment_type"`
	Description    string `gorm:"type:text" json:"description"`
	SalaryMin      int    `json:"salary_min"`
	SalaryMax      int    `json:"salary_max"`
	ContactEmail   string `gorm:"size:160" json:"contact_email"`
	PostedByID     uint   `gorm:"not null;index" json:"posted_by_id"`
	PostedBy       User   `gorm:"foreignKey:PostedByID" json:"posted_by"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

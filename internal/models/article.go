package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is a long-form publication by a dental professional.
// Only approved articles appear in public listings.
type Article struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Title      string   `gorm:"not null" json:"title"`
	Excerpt    string   `gorm:"type:text" json:"excerpt"`
	Content    string   `gorm:"type:text;not null" json:"content"`
	Category   string   `gorm:"size:80;index" json:"category"`
	CoverImage string   `json:"cover_image"`
	AuthorID   uint     `gorm:"not null;index" json:"author_id"`
	Author     User     `gorm:"foreignKey:AuthorID" json:"author"`
	JournalID  *uint    `gorm:"index" json:"journal_id,omitempty"`
	Journal    *Journal `gorm:"foreignKey:JournalID" json:"journal,omitempty"`

	IsApproved bool   `gorm:"default:false;index" json:"is_approved"`
	ReviewNote string `gorm:"type:text" json:"review_note,omitempty"`

	// ViewsCount is not persisted; computed at query time
	ViewsCount int `gorm:"->" json:"views_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Journal groups articles into a periodical issue.
type Journal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CoverImage  string    `json:"cover_image"`
	IssueDate   time.Time `json:"issue_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

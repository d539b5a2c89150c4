package models

import (
	"time"

	"gorm.io/gorm"
)

// Thread is a forum discussion opened by a user.
type Thread struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `gorm:"size:80;index" json:"category"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	// ReplyCount is denormalized and maintained with an atomic in-database
	// increment when replies are created or removed.
	ReplyCount int `gorm:"default:0" json:"reply_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ForumPost is a reply inside a thread.
type ForumPost struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ThreadID uint    `gorm:"not null;index" json:"thread_id"`
	Thread   *Thread `gorm:"foreignKey:ThreadID" json:"thread,omitempty"`
	AuthorID uint    `gorm:"not null;index" json:"author_id"`
	Author   User    `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string  `gorm:"type:text;not null" json:"content"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

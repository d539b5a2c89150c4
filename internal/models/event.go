package models

import "time"

// EventStatus defines the lifecycle of an event listing.
type EventStatus string

const (
	// EventStatusUpcoming indicates a future event shown in public listings.
	EventStatusUpcoming EventStatus = "upcoming"
	// EventStatusCompleted indicates a past event.
	EventStatusCompleted EventStatus = "completed"
	// EventStatusCancelled indicates a cancelled event.
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a conference, webinar or CPD course listing.
type Event struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	EventType   string      `gorm:"size:80;index" json:"event_type"`
	Location    string      `gorm:"size:160" json:"location"`
	IsVirtual   bool        `json:"is_virtual"`
	Date        time.Time   `gorm:"index" json:"date"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Status      EventStatus `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"`
	Image       string      `json:"image"`
	CreatedByID uint        `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   User        `gorm:"foreignKey:CreatedByID" json:"created_by"`

	// RegisteredCount is not persisted; computed at query time
	RegisteredCount int `gorm:"->" json:"registered_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventRegistrationStatus tracks a registration's state.
type EventRegistrationStatus string

const (
	// EventRegistrationRegistered is an active registration.
	EventRegistrationRegistered EventRegistrationStatus = "registered"
	// EventRegistrationCancelled is a withdrawn registration.
	EventRegistrationCancelled EventRegistrationStatus = "cancelled"
)

// EventRegistration maps users to events they signed up for.
type EventRegistration struct {
	ID        uint                    `gorm:"primaryKey" json:"id"`
	EventID   uint                    `gorm:"not null;uniqueIndex:idx_event_user" json:"event_id"`
	Event     *Event                  `gorm:"foreignKey:EventID" json:"event,omitempty"`
	UserID    uint                    `gorm:"not null;uniqueIndex:idx_event_user" json:"user_id"`
	User      *User                   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    EventRegistrationStatus `gorm:"type:varchar(20);not null;default:'registered'" json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

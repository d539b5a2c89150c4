package models

import "time"

// ProfileReview is one user's rating of another user's profile.
// The (profile_id, rater_id) unique index is the real guard against double
// submission; the has-reviewed existence check only gates the form.
type ProfileReview struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProfileID uint   `gorm:"not null;uniqueIndex:idx_review_profile_rater" json:"profile_id"`
	Profile   *User  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	RaterID   uint   `gorm:"not null;uniqueIndex:idx_review_profile_rater" json:"rater_id"`
	Rater     *User  `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reputation is the composite reputation aggregate for a profile, computed
// from reviews at read time.
type Reputation struct {
	ProfileID     uint    `json:"profile_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

package models

import "time"

// SellerApplicationStatus defines lifecycle states for seller applications.
type SellerApplicationStatus string

const (
	// SellerApplicationStatusPending indicates the application is awaiting review.
	SellerApplicationStatusPending SellerApplicationStatus = "pending"
	// SellerApplicationStatusApproved indicates the application was accepted.
	SellerApplicationStatusApproved SellerApplicationStatus = "approved"
	// SellerApplicationStatusRejected indicates the application was denied.
	SellerApplicationStatusRejected SellerApplicationStatus = "rejected"
)

// SellerApplication is a user's request for marketplace selling privileges.
// Applications are never deleted; rejected rows remain as history and feed
// the per-user application counter.
type SellerApplication struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	BusinessName       string  `gorm:"size:160;not null" json:"business_name"`
	BusinessType       string  `gorm:"size:80;not null" json:"business_type"`
	BusinessAddress    string  `gorm:"type:text" json:"business_address"`
	BusinessPhone      string  `gorm:"size:32" json:"business_phone"`
	BusinessEmail      string  `gorm:"size:160" json:"business_email"`
	TaxID              string  `gorm:"size:64" json:"tax_id,omitempty"`
	BusinessLicense    string  `json:"business_license,omitempty"`
	BankAccountDetails string  `gorm:"type:text" json:"bank_account_details,omitempty"`
	ExperienceYears    int     `json:"experience_years"`
	ProductCategories  Strings `gorm:"type:text" json:"product_categories"`

	Status           SellerApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminNotes       string                  `gorm:"type:text" json:"admin_notes,omitempty"`
	ReviewedByUserID *uint                   `json:"reviewed_by_user_id,omitempty"`
	ReviewedByUser   *User                   `gorm:"foreignKey:ReviewedByUserID" json:"reviewed_by_user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

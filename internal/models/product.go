package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a marketplace listing owned by an approved seller.
// Listings only surface publicly once admin-approved and active.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:80;index" json:"category"`
	PriceCents  int64   `gorm:"not null" json:"price_cents"`
	Currency    string  `gorm:"size:3;default:'USD'" json:"currency"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `gorm:"default:0" json:"stock"`
	SellerID    uint    `gorm:"not null;index" json:"seller_id"`
	Seller      User    `gorm:"foreignKey:SellerID" json:"seller"`

	AdminApproved bool `gorm:"default:false;index" json:"admin_approved"`
	IsActive      bool `gorm:"default:true;index" json:"is_active"`
	IsSponsored   bool `gorm:"default:false" json:"is_sponsored"`
	IsFeatured    bool `gorm:"default:false" json:"is_featured"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CartItem is a product placed in a user's shopping cart.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WishlistItem is a product saved to a user's wishlist.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductImage stores a processed product photo. Uploads are normalized to
// webp before persisting.
type ProductImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	UploaderID  uint      `gorm:"not null" json:"uploader_id"`
	ContentType string    `gorm:"size:64;not null" json:"content_type"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	SizeBytes   int       `json:"size_bytes"`
	Data        []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

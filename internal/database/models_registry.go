package database

import "dentalreach/internal/models"

// PersistentModels returns every model that participates in schema
// migration. cmd/migrate and the non-production AutoMigrate path both
// consume this list so the two can never drift.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.SellerApplication{},
		&models.Notification{},
		&models.Journal{},
		&models.Article{},
		&models.Thread{},
		&models.ForumPost{},
		&models.Event{},
		&models.EventRegistration{},
		&models.JobListing{},
		&models.Product{},
		&models.ProductImage{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.ProfileReview{},
		&models.Reputation{},
		&models.Achievement{},
		&models.Course{},
	}
}

package seed

import (
	"fmt"
	"log"
	"os"

	"dentalreach/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	Users    int `yaml:"users"`
	Articles int `yaml:"articles"`
	Threads  int `yaml:"threads"`
	Events   int `yaml:"events"`
	Jobs     int `yaml:"jobs"`
	Products int `yaml:"products"`
	Reviews  int `yaml:"reviews"`
	Journals int `yaml:"journals"`
}

// DefaultOptions is a medium-sized demo dataset.
var DefaultOptions = Options{
	Users:    50,
	Articles: 120,
	Threads:  60,
	Events:   20,
	Jobs:     30,
	Products: 80,
	Reviews:  150,
	Journals: 6,
}

// LoadOptions reads seeder options from a yaml preset file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read preset: %w", err)
	}
	opts := DefaultOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse preset: %w", err)
	}
	return opts, nil
}

// Seeder populates the database with generated demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll deletes all seeded data. Child tables go first so foreign keys
// never dangle mid-way.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.ProductImage{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.ProfileReview{},
		&models.Notification{},
		&models.EventRegistration{},
		&models.ForumPost{},
		&models.Thread{},
		&models.Article{},
		&models.Journal{},
		&models.Event{},
		&models.JobListing{},
		&models.Product{},
		&models.SellerApplication{},
		&models.Achievement{},
		&models.Course{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// Run generates the dataset described by opts.
func (s *Seeder) Run(opts Options) error {
	f := s.factory

	admin, err := f.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@dentalreach.dev"
		u.FullName = "Site Admin"
		u.IsAdmin = true
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	users = append(users, admin)
	for i := 1; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	journals := make([]*models.Journal, 0, opts.Journals)
	for i := 0; i < opts.Journals; i++ {
		journal, err := f.CreateJournal()
		if err != nil {
			return fmt.Errorf("create journal: %w", err)
		}
		journals = append(journals, journal)
	}

	for i := 0; i < opts.Articles; i++ {
		author := users[f.rng.Intn(len(users))]
		_, err := f.CreateArticle(author, func(a *models.Article) {
			if len(journals) > 0 && f.rng.Intn(3) == 0 {
				a.JournalID = &journals[f.rng.Intn(len(journals))].ID
			}
		})
		if err != nil {
			return fmt.Errorf("create article: %w", err)
		}
	}
	log.Printf("created %d articles across %d journals", opts.Articles, len(journals))

	for i := 0; i < opts.Threads; i++ {
		if _, err := f.CreateThread(users[f.rng.Intn(len(users))], users); err != nil {
			return fmt.Errorf("create thread: %w", err)
		}
	}

	for i := 0; i < opts.Events; i++ {
		if _, err := f.CreateEvent(admin); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
	}

	for i := 0; i < opts.Jobs; i++ {
		if _, err := f.CreateJob(users[f.rng.Intn(len(users))]); err != nil {
			return fmt.Errorf("create job: %w", err)
		}
	}

	// A handful of users become approved sellers and own the products.
	sellerCount := len(users) / 10
	if sellerCount < 2 {
		sellerCount = 2
	}
	sellers := make([]*models.User, 0, sellerCount)
	for i := 0; i < sellerCount && i+1 < len(users); i++ {
		seller := users[i+1]
		if _, err := f.CreateSellerApplication(seller, models.SellerApplicationStatusApproved); err != nil {
			return fmt.Errorf("create seller application: %w", err)
		}
		if err := s.db.Model(seller).Updates(map[string]interface{}{
			"is_seller":     true,
			"seller_status": models.SellerStatusApproved,
		}).Error; err != nil {
			return fmt.Errorf("promote seller: %w", err)
		}
		sellers = append(sellers, seller)
	}
	// One pending application for the admin review queue demo.
	if len(users) > sellerCount+1 {
		if _, err := f.CreateSellerApplication(users[sellerCount+1], models.SellerApplicationStatusPending); err != nil {
			return fmt.Errorf("create pending application: %w", err)
		}
	}
	log.Printf("created %d sellers", len(sellers))

	for i := 0; i < opts.Products && len(sellers) > 0; i++ {
		if _, err := f.CreateProduct(sellers[f.rng.Intn(len(sellers))]); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
	}

	created := 0
	for attempts := 0; created < opts.Reviews && attempts < opts.Reviews*3; attempts++ {
		profile := users[f.rng.Intn(len(users))]
		rater := users[f.rng.Intn(len(users))]
		if profile.ID == rater.ID {
			continue
		}
		var count int64
		if err := s.db.Model(&models.ProfileReview{}).
			Where("profile_id = ? AND rater_id = ?", profile.ID, rater.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check review: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := f.CreateReview(profile, rater); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		created++
	}
	log.Printf("created %d reviews", created)

	log.Println("seeding complete")
	return nil
}

// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"dentalreach/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var specialties = []string{
	"Orthodontics", "Endodontics", "Periodontics", "Prosthodontics",
	"Oral Surgery", "Pediatric Dentistry", "General Dentistry",
	"Cosmetic Dentistry", "Implantology",
}

var articleCategories = []string{
	"Clinical", "Research", "Practice Management", "Technology",
	"Education", "Case Reports",
}

var threadCategories = []string{
	"Clinical Questions", "Practice Management", "Equipment",
	"Career", "Students", "General",
}

var eventTypes = []string{"Conference", "Webinar", "Workshop", "CPD Course"}

var employmentTypes = []string{"full-time", "part-time", "locum", "contract"}

var productCategories = []string{
	"Orthodontics", "Equipment", "Dental Care", "Surgery", "Cosmetic", "Instruments",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	now := time.Now().UnixNano()
	gofakeit.Seed(now)
	return &Factory{db: db, rng: rand.New(rand.NewSource(now))}
}

func (f *Factory) pastTime(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	return time.Now().
		Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)
}

func (f *Factory) pick(values []string) string {
	return values[f.rng.Intn(len(values))]
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		FullName:  gofakeit.Name(),
		Bio:       gofakeit.Sentence(12),
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsDentist: true,
		Specialty: f.pick(specialties),
		ClinicName: fmt.Sprintf("%s Dental %s",
			gofakeit.LastName(), f.pick([]string{"Clinic", "Practice", "Center"})),
		City:    gofakeit.City(),
		Country: gofakeit.Country(),
	}
	user.CreatedAt = f.pastTime(365)

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateJournal persists a journal issue.
func (f *Factory) CreateJournal(overrides ...func(*models.Journal)) (*models.Journal, error) {
	journal := &models.Journal{
		Title:     fmt.Sprintf("DentalReach Journal Vol. %d", gofakeit.Number(1, 40)),
		IssueDate: f.pastTime(720),
	}
	for _, override := range overrides {
		override(journal)
	}
	if err := f.db.Create(journal).Error; err != nil {
		return nil, err
	}
	return journal, nil
}

// CreateArticle persists an article by the given author.
func (f *Factory) CreateArticle(author *models.User, overrides ...func(*models.Article)) (*models.Article, error) {
	article := &models.Article{
		Title:      gofakeit.Sentence(6),
		Excerpt:    gofakeit.Sentence(16),
		Content:    gofakeit.Paragraph(3, 5, 10, "\n\n"),
		Category:   f.pick(articleCategories),
		CoverImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		AuthorID:   author.ID,
		IsApproved: f.rng.Intn(10) < 8,
	}
	article.CreatedAt = f.pastTime(365)

	for _, override := range overrides {
		override(article)
	}
	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// CreateThread persists a forum thread with a handful of replies from the
// given user pool. The thread's reply counter matches the created replies.
func (f *Factory) CreateThread(author *models.User, repliers []*models.User) (*models.Thread, error) {
	thread := &models.Thread{
		Title:    gofakeit.Question(),
		Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
		Category: f.pick(threadCategories),
		AuthorID: author.ID,
	}
	thread.CreatedAt = f.pastTime(180)
	if err := f.db.Create(thread).Error; err != nil {
		return nil, err
	}

	if len(repliers) > 0 {
		n := f.rng.Intn(6)
		for i := 0; i < n; i++ {
			reply := &models.ForumPost{
				ThreadID: thread.ID,
				AuthorID: repliers[f.rng.Intn(len(repliers))].ID,
				Content:  gofakeit.Sentence(18),
			}
			if err := f.db.Create(reply).Error; err != nil {
				return nil, err
			}
		}
		thread.ReplyCount = n
		if err := f.db.Model(thread).Update("reply_count", n).Error; err != nil {
			return nil, err
		}
	}
	return thread, nil
}

// CreateEvent persists an upcoming event.
func (f *Factory) CreateEvent(creator *models.User, overrides ...func(*models.Event)) (*models.Event, error) {
	start := time.Now().Add(time.Duration(f.rng.Intn(120)+1) * 24 * time.Hour)
	end := start.Add(time.Duration(f.rng.Intn(48)+2) * time.Hour)
	event := &models.Event{
		Title:       fmt.Sprintf("%s %d", gofakeit.Sentence(4), time.Now().Year()),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		EventType:   f.pick(eventTypes),
		Location:    fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		IsVirtual:   f.rng.Intn(3) == 0,
		Date:        start,
		EndDate:     &end,
		Status:      models.EventStatusUpcoming,
		Image:       fmt.Sprintf("https://picsum.photos/seed/event-%s/1200/630", gofakeit.UUID()),
		CreatedByID: creator.ID,
	}
	for _, override := range overrides {
		override(event)
	}
	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// CreateJob persists a job listing.
func (f *Factory) CreateJob(poster *models.User) (*models.JobListing, error) {
	min := gofakeit.Number(50, 120) * 1000
	job := &models.JobListing{
		Title:          fmt.Sprintf("%s - %s", f.pick(specialties), f.pick([]string{"Associate", "Partner", "Locum", "Lead"})),
		ClinicName:     fmt.Sprintf("%s Dental", gofakeit.LastName()),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		EmploymentType: f.pick(employmentTypes),
		Description:    gofakeit.Paragraph(1, 3, 8, "\n"),
		SalaryMin:      min,
		SalaryMax:      min + gofakeit.Number(10, 60)*1000,
		ContactEmail:   gofakeit.Email(),
		PostedByID:     poster.ID,
	}
	job.CreatedAt = f.pastTime(90)
	if err := f.db.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// CreateProduct persists a marketplace product owned by the given seller.
func (f *Factory) CreateProduct(seller *models.User, overrides ...func(*models.Product)) (*models.Product, error) {
	product := &models.Product{
		Name:          gofakeit.ProductName(),
		Description:   gofakeit.Paragraph(1, 2, 8, "\n"),
		Category:      f.pick(productCategories),
		PriceCents:    int64(gofakeit.Number(500, 500000)),
		Currency:      "USD",
		ImageURL:      fmt.Sprintf("https://picsum.photos/seed/product-%s/800/800", gofakeit.UUID()),
		Stock:         gofakeit.Number(0, 200),
		SellerID:      seller.ID,
		AdminApproved: f.rng.Intn(10) < 8,
		IsActive:      true,
		IsSponsored:   f.rng.Intn(12) == 0,
		IsFeatured:    f.rng.Intn(8) == 0,
	}
	product.CreatedAt = f.pastTime(180)

	for _, override := range overrides {
		override(product)
	}
	if err := f.db.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// CreateSellerApplication persists a seller application for the given user.
func (f *Factory) CreateSellerApplication(user *models.User, status models.SellerApplicationStatus) (*models.SellerApplication, error) {
	application := &models.SellerApplication{
		UserID:            user.ID,
		BusinessName:      fmt.Sprintf("%s Dental Supplies", gofakeit.LastName()),
		BusinessType:      f.pick([]string{"manufacturer", "distributor", "retailer"}),
		BusinessAddress:   gofakeit.Address().Address,
		BusinessPhone:     gofakeit.Phone(),
		BusinessEmail:     gofakeit.Email(),
		ExperienceYears:   gofakeit.Number(1, 30),
		ProductCategories: models.Strings{f.pick(productCategories)},
		Status:            status,
	}
	application.CreatedAt = f.pastTime(120)
	if err := f.db.Create(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

// CreateReview persists a profile review.
func (f *Factory) CreateReview(profile, rater *models.User) (*models.ProfileReview, error) {
	review := &models.ProfileReview{
		ProfileID: profile.ID,
		RaterID:   rater.ID,
		Rating:    gofakeit.Number(2, 5),
		Comment:   gofakeit.Sentence(14),
	}
	review.CreatedAt = f.pastTime(180)
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

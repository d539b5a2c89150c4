package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dentalreach/internal/models"
	"dentalreach/internal/repository"
	"dentalreach/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSellerHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.SellerApplication{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// newSellerTestApp wires a minimal app around the seller routes with the
// given caller injected as the authenticated user.
func newSellerTestApp(db *gorm.DB, callerID uint) *fiber.App {
	s := &Server{
		db:               db,
		sellerService:    service.NewSellerService(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", callerID)
		return c.Next()
	})
	app.Post("/seller/apply", s.ApplyAsSeller)
	app.Get("/seller/status", s.GetSellerStatus)
	app.Get("/seller/application", s.GetMySellerApplication)
	app.Get("/admin/seller-applications", s.GetSellerApplications)
	app.Post("/admin/seller-applications/:id/approve", s.ApproveSellerApplication)
	app.Post("/admin/seller-applications/:id/reject", s.RejectSellerApplication)
	return app
}

func applyBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"business_name":      "Bright Dental Supply",
		"business_type":      "retailer",
		"business_email":     "orders@bright.example",
		"experience_years":   4,
		"product_categories": []string{"Instruments"},
	})
	return body
}

func TestSellerApplicationApprovalFlow(t *testing.T) {
	db := setupSellerHandlerTestDB(t)

	applicant := models.User{Username: "applicant", Email: "a@example.com", Password: "pw"}
	admin := models.User{Username: "admin", Email: "admin@example.com", Password: "pw", IsAdmin: true}
	require.NoError(t, db.Create(&applicant).Error)
	require.NoError(t, db.Create(&admin).Error)

	applicantApp := newSellerTestApp(db, applicant.ID)
	adminApp := newSellerTestApp(db, admin.ID)

	// Applicant submits.
	req := httptest.NewRequest(http.MethodPost, "/seller/apply", bytes.NewReader(applyBody()))
	req.Header.Set("Content-Type", "application/json")
	resp, err := applicantApp.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.SellerApplication
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()
	assert.Equal(t, models.SellerApplicationStatusPending, created.Status)

	// A second submission while pending is refused.
	req = httptest.NewRequest(http.MethodPost, "/seller/apply", bytes.NewReader(applyBody()))
	req.Header.Set("Content-Type", "application/json")
	resp, err = applicantApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// Admin sees it in the pending queue.
	resp, err = adminApp.Test(httptest.NewRequest(http.MethodGet, "/admin/seller-applications?status=pending", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var queue struct {
		Applications []models.SellerApplication `json:"applications"`
		TotalCount   int64                      `json:"total_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&queue))
	_ = resp.Body.Close()
	require.Len(t, queue.Applications, 1)
	assert.Equal(t, int64(1), queue.TotalCount)

	// Admin approves.
	approveURL := "/admin/seller-applications/1/approve"
	body, _ := json.Marshal(map[string]string{"admin_notes": "verified"})
	req = httptest.NewRequest(http.MethodPost, approveURL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = adminApp.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Approving again is a conflict; the decision is final.
	req = httptest.NewRequest(http.MethodPost, approveURL, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = adminApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// Applicant's status view reflects the approval.
	resp, err = applicantApp.Test(httptest.NewRequest(http.MethodGet, "/seller/status", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view service.SellerStatusView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	_ = resp.Body.Close()
	assert.True(t, view.IsSeller)
	assert.Equal(t, models.SellerStatusApproved, view.SellerStatus)

	// And the approval notification row exists.
	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", applicant.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationApplicationApproved, notification.Type)
	assert.Contains(t, notification.Message, `"Bright Dental Supply"`)
}

func TestSellerApplicationRejectionFlow(t *testing.T) {
	db := setupSellerHandlerTestDB(t)

	applicant := models.User{Username: "hopeful", Email: "h@example.com", Password: "pw"}
	admin := models.User{Username: "admin2", Email: "admin2@example.com", Password: "pw", IsAdmin: true}
	require.NoError(t, db.Create(&applicant).Error)
	require.NoError(t, db.Create(&admin).Error)

	applicantApp := newSellerTestApp(db, applicant.ID)
	adminApp := newSellerTestApp(db, admin.ID)

	req := httptest.NewRequest(http.MethodPost, "/seller/apply", bytes.NewReader(applyBody()))
	req.Header.Set("Content-Type", "application/json")
	resp, err := applicantApp.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	body, _ := json.Marshal(map[string]string{"admin_notes": "Missing license documents"})
	req = httptest.NewRequest(http.MethodPost, "/admin/seller-applications/1/reject", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = adminApp.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = applicantApp.Test(httptest.NewRequest(http.MethodGet, "/seller/status", nil))
	require.NoError(t, err)
	var view service.SellerStatusView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	_ = resp.Body.Close()
	assert.False(t, view.IsSeller)
	assert.Equal(t, models.SellerStatusRejected, view.SellerStatus)
	assert.Equal(t, 1, view.ApplicationCount)
	assert.True(t, view.CanReapply)
	assert.False(t, view.LastChance)

	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", applicant.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationApplicationRejected, notification.Type)
	assert.Contains(t, notification.Message, "Reason: Missing license documents")
	assert.Equal(t, "Missing license documents", notification.Reason)
}

func TestGetMySellerApplicationNotFound(t *testing.T) {
	db := setupSellerHandlerTestDB(t)
	user := models.User{Username: "nobody", Email: "n@example.com", Password: "pw"}
	require.NoError(t, db.Create(&user).Error)

	app := newSellerTestApp(db, user.ID)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/seller/application", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

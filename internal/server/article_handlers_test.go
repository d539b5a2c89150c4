package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockArticleRepository is a mock of the ArticleRepository interface
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) ListApproved(ctx context.Context, limit, offset int) ([]*models.Article, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Article, error) {
	args := m.Called(ctx, authorID, limit, offset)
	return args.Get(0).([]*models.Article), args.Error(1)
}

func (m *MockArticleRepository) ListPendingReview(ctx context.Context, limit, offset int) ([]*models.Article, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) ListJournals(ctx context.Context) ([]models.Journal, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Journal), args.Error(1)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func samplePage() []*models.Article {
	return []*models.Article{
		{ID: 1, Title: "Implant techniques", Excerpt: "modern implants", Category: "Clinical",
			IsApproved: true, CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Practice billing", Excerpt: "getting paid", Category: "Practice Management",
			IsApproved: true, CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Implant materials review", Excerpt: "titanium vs zirconia", Category: "Research",
			IsApproved: true, CreatedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestGetArticlesFiltersWithinFetchedPage(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockArticleRepository)
	s := &Server{articleRepo: mockRepo}
	app.Get("/articles", s.GetArticles)

	mockRepo.On("ListApproved", mock.Anything, articlesPerPage, 0).
		Return(samplePage(), int64(30), nil)

	req := httptest.NewRequest(http.MethodGet, "/articles?q=implant", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Articles []models.Article `json:"articles"`
		Meta     ListMeta         `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	// The q filter narrows the page, the meta still describes the full set.
	require.Len(t, body.Articles, 2)
	assert.Equal(t, uint(1), body.Articles[0].ID)
	assert.Equal(t, uint(3), body.Articles[1].ID)
	assert.Equal(t, int64(30), body.Meta.TotalCount)
	assert.Equal(t, 4, body.Meta.TotalPages)
}

func TestGetArticlesCategoryAndYearFilters(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockArticleRepository)
	s := &Server{articleRepo: mockRepo}
	app.Get("/articles", s.GetArticles)

	mockRepo.On("ListApproved", mock.Anything, articlesPerPage, 0).
		Return(samplePage(), int64(3), nil)

	tests := []struct {
		name     string
		query    string
		expected []uint
	}{
		{"category filter", "?category=Research", []uint{3}},
		{"year filter", "?year=2025", []uint{1, 2}},
		{"combined", "?q=implant&year=2024", []uint{3}},
		{"no match", "?category=Education", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/articles"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body struct {
				Articles []models.Article `json:"articles"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			var ids []uint
			for _, a := range body.Articles {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestGetArticlesPageParam(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockArticleRepository)
	s := &Server{articleRepo: mockRepo}
	app.Get("/articles", s.GetArticles)

	mockRepo.On("ListApproved", mock.Anything, articlesPerPage, 2*articlesPerPage).
		Return([]*models.Article{}, int64(30), nil)

	req := httptest.NewRequest(http.MethodGet, "/articles?page=3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestCreateArticle(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockArticleRepository)
	s := &Server{articleRepo: mockRepo}

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(7))
		return c.Next()
	})
	app.Post("/articles", s.CreateArticle)

	tests := []struct {
		name           string
		body           map[string]interface{}
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"title":    "New findings",
				"content":  "Full text",
				"category": "Research",
			},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Article) bool {
					return a.AuthorID == 7 && !a.IsApproved
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing title",
			body:           map[string]interface{}{"content": "text"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing content",
			body:           map[string]interface{}{"title": "only a title"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/articles", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageNumbersWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		expected    []string
	}{
		{
			name:        "middle of a long list",
			currentPage: 5,
			totalPages:  10,
			expected:    []string{"1", "2", "3", "4", "5", "6", "7", "...", "10"},
		},
		{
			name:        "collapses large gaps",
			currentPage: 10,
			totalPages:  20,
			expected:    []string{"1", "...", "8", "9", "10", "11", "12", "...", "20"},
		},
		{
			name:        "fills a single-page gap instead of ellipsis",
			currentPage: 5,
			totalPages:  8,
			expected:    []string{"1", "2", "3", "4", "5", "6", "7", "8"},
		},
		{
			name:        "first page",
			currentPage: 1,
			totalPages:  10,
			expected:    []string{"1", "2", "3", "...", "10"},
		},
		{
			name:        "last page",
			currentPage: 10,
			totalPages:  10,
			expected:    []string{"1", "...", "8", "9", "10"},
		},
		{
			name:        "few pages never collapse",
			currentPage: 2,
			totalPages:  3,
			expected:    []string{"1", "2", "3"},
		},
		{
			name:        "single page",
			currentPage: 1,
			totalPages:  1,
			expected:    []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pageNumbers(tt.currentPage, tt.totalPages))
		})
	}
}

func TestBuildListMeta(t *testing.T) {
	t.Parallel()

	meta := buildListMeta(85, 3, articlesPerPage)
	assert.Equal(t, int64(85), meta.TotalCount)
	assert.Equal(t, 10, meta.TotalPages)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, articlesPerPage, meta.PageSize)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "...", "10"}, meta.Pages)

	empty := buildListMeta(0, 1, articlesPerPage)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Pages)
}

func TestMatchesQuery(t *testing.T) {
	t.Parallel()

	assert.True(t, matchesQuery("", "anything"))
	assert.True(t, matchesQuery("implant", "Advances in IMPLANT dentistry", "excerpt"))
	assert.True(t, matchesQuery("implant", "title", "new implant techniques"))
	assert.False(t, matchesQuery("orthodontics", "implant case report", "summary"))
}

func TestMatchesCategory(t *testing.T) {
	t.Parallel()

	assert.True(t, matchesCategory("", "Clinical"))
	assert.True(t, matchesCategory("Clinical", "Clinical"))
	assert.False(t, matchesCategory("clinical", "Clinical"))
	assert.False(t, matchesCategory("Research", "Clinical"))
}

func TestMatchesYear(t *testing.T) {
	t.Parallel()

	published := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, matchesYear(0, published))
	assert.True(t, matchesYear(2025, published))
	assert.False(t, matchesYear(2024, published))
}

func TestHumanizeParam(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "product ID", humanizeParam("productId"))
}

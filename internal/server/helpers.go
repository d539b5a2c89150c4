// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Fixed page sizes per listing collection.
const (
	articlesPerPage = 9
	eventsPerPage   = 8
	productsPerPage = 12
	threadsPerPage  = 10
	jobsPerPage     = 10
	dentistsPerPage = 12
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parsePage extracts a 1-based page query parameter and returns the page
// number together with the matching row offset for the given page size.
func parsePage(c *fiber.Ctx, pageSize int) (page, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page, (page - 1) * pageSize
}

// ListMeta is the pagination envelope shared by all listing endpoints.
type ListMeta struct {
	TotalCount int64    `json:"total_count"`
	TotalPages int      `json:"total_pages"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	Pages      []string `json:"pages"`
}

// buildListMeta computes the pagination envelope for a listing response.
func buildListMeta(totalCount int64, page, pageSize int) ListMeta {
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return ListMeta{
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
		Pages:      pageNumbers(page, totalPages),
	}
}

// pageNumbers renders the page-selector window: first and last page always,
// two pages either side of the current one, a gap of exactly one page filled
// with its number, larger gaps collapsed to "...".
func pageNumbers(currentPage, totalPages int) []string {
	const delta = 2

	var window []int
	for i := 1; i <= totalPages; i++ {
		if i == 1 || i == totalPages ||
			(i >= currentPage-delta && i <= currentPage+delta) {
			window = append(window, i)
		}
	}

	var out []string
	last := 0
	for _, i := range window {
		if last > 0 {
			if i-last == 2 {
				out = append(out, strconv.Itoa(last+1))
			} else if i-last != 1 {
				out = append(out, "...")
			}
		}
		out = append(out, strconv.Itoa(i))
		last = i
	}
	return out
}

// matchesQuery reports whether any of the fields contains q,
// case-insensitively. An empty q matches everything.
func matchesQuery(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// matchesCategory reports whether the value equals the requested category.
// An empty category matches everything.
func matchesCategory(category, value string) bool {
	return category == "" || category == value
}

// matchesYear reports whether t falls in the requested year. Zero matches
// everything.
func matchesYear(year int, t time.Time) bool {
	return year == 0 || t.Year() == year
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "id" -> "Invalid ID",
// "userId" -> "Invalid user ID", "productId" -> "Invalid product ID").
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "productId" -> "product ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// isAdmin checks whether the given user has admin privileges.
func (s *Server) isAdmin(c *fiber.Ctx, userID uint) (bool, error) {
	return s.isAdminByUserID(c.Context(), userID)
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_admin").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// isApprovedSellerByUserID checks whether the given user may manage products.
func (s *Server) isApprovedSellerByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_seller", "seller_status").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsSeller && user.SellerStatus == models.SellerStatusApproved, nil
}

// appErrorStatus maps an AppError code to the HTTP status it should produce.
func appErrorStatus(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		case "CONFLICT":
			return fiber.StatusConflict
		}
	}
	return fiber.StatusInternalServerError
}

// respondServiceError writes the HTTP response matching a service-layer error.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, appErrorStatus(err), err)
}

package server

import (
	"strings"

	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
)

const showcaseLimit = 6

// GetProducts handles GET /api/products?page=N&q=...&category=...
// @Summary List marketplace products
// @Description Returns one page of approved, active products ordered sponsored first, then featured, then newest.
// @Tags products
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param q query string false "Free-text filter within the page"
// @Param category query string false "Category filter within the page"
// @Success 200 {object} object{products=[]models.Product,meta=ListMeta}
// @Router /products [get]
func (s *Server) GetProducts(c *fiber.Ctx) error {
	ctx := c.Context()
	page, offset := parsePage(c, productsPerPage)

	products, total, err := s.productRepo.ListVisible(ctx, productsPerPage, offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	q := c.Query("q")
	category := c.Query("category")
	filtered := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if matchesQuery(q, p.Name, p.Description) && matchesCategory(category, p.Category) {
			filtered = append(filtered, p)
		}
	}

	return c.JSON(fiber.Map{
		"products": filtered,
		"meta":     buildListMeta(total, page, productsPerPage),
	})
}

// GetProductShowcase handles GET /api/products/showcase
// Returns the sponsored and featured products shown on the landing page.
func (s *Server) GetProductShowcase(c *fiber.Ctx) error {
	ctx := c.Context()

	var products []*models.Product
	if err := s.db.WithContext(ctx).
		Where("admin_approved = ? AND is_active = ? AND (is_sponsored = ? OR is_featured = ?)",
			true, true, true, true).
		Order("is_sponsored DESC, is_featured DESC, created_at DESC").
		Limit(showcaseLimit).
		Find(&products).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(products)
}

// GetProduct handles GET /api/products/:id
func (s *Server) GetProduct(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Unapproved or inactive listings stay visible to their seller and admins.
	if !product.AdminApproved || !product.IsActive {
		userID, ok := s.optionalUserID(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Product", id))
		}
		if userID != product.SellerID {
			admin, adminErr := s.isAdmin(c, userID)
			if adminErr != nil || !admin {
				return models.RespondWithError(c, fiber.StatusNotFound,
					models.NewNotFoundError("Product", id))
			}
		}
	}

	return c.JSON(product)
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func validateProductRequest(req *productRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return models.NewValidationError("Product name is required")
	}
	if req.PriceCents <= 0 {
		return models.NewValidationError("Price must be positive")
	}
	if req.Stock < 0 {
		return models.NewValidationError("Stock cannot be negative")
	}
	return nil
}

// requireApprovedSeller resolves the caller and checks the seller gate.
// A false return means the error response has been written.
func (s *Server) requireApprovedSeller(c *fiber.Ctx) (uint, bool) {
	userID := c.Locals("userID").(uint)
	approved, err := s.isApprovedSellerByUserID(c.Context(), userID)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
		return 0, false
	}
	if !approved {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Only approved sellers can manage products"))
		return 0, false
	}
	return userID, true
}

// CreateProduct handles POST /api/seller/products
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, ok := s.requireApprovedSeller(c)
	if !ok {
		return nil
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validateProductRequest(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		PriceCents:    req.PriceCents,
		Currency:      currency,
		ImageURL:      req.ImageURL,
		Stock:         req.Stock,
		SellerID:      userID,
		AdminApproved: false,
		IsActive:      true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetMyProducts handles GET /api/seller/products
func (s *Server) GetMyProducts(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, ok := s.requireApprovedSeller(c)
	if !ok {
		return nil
	}
	page := parsePagination(c, 50)

	products, err := s.productRepo.ListBySeller(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(products)
}

// UpdateProduct handles PUT /api/seller/products/:id
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, ok := s.requireApprovedSeller(c)
	if !ok {
		return nil
	}
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req productRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validateProductRequest(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Check ownership
	if product.SellerID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only update your own products"))
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.PriceCents = req.PriceCents
	if req.Currency != "" {
		product.Currency = req.Currency
	}
	product.ImageURL = req.ImageURL
	product.Stock = req.Stock
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	// Material edits go back through admin review.
	product.AdminApproved = false

	if err := s.productRepo.Update(ctx, product); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(product)
}

// DeleteProduct handles DELETE /api/seller/products/:id
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, ok := s.requireApprovedSeller(c)
	if !ok {
		return nil
	}
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if product.SellerID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only delete your own products"))
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetPendingProducts handles GET /api/admin/products/pending
func (s *Server) GetPendingProducts(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	products, total, err := s.productRepo.ListPendingApproval(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{
		"products":    products,
		"total_count": total,
	})
}

// ApproveProduct handles POST /api/admin/products/:id/approve
func (s *Server) ApproveProduct(c *fiber.Ctx) error {
	ctx := c.Context()
	productID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Sponsored bool `json:"sponsored"`
		Featured  bool `json:"featured"`
	}
	_ = c.BodyParser(&req)

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return respondServiceError(c, err)
	}

	product.AdminApproved = true
	product.IsSponsored = req.Sponsored
	product.IsFeatured = req.Featured
	if err := s.productRepo.Update(ctx, product); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	notification := &models.Notification{
		UserID:  product.SellerID,
		Type:    models.NotificationProductApproved,
		Message: "Your product \"" + product.Name + "\" has been approved and is now live.",
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	s.notifyNotificationCreated(product.SellerID, notification.ID, string(notification.Type))
	s.publishBroadcastEvent(EventProductApproved, fiber.Map{"product_id": product.ID})

	return c.JSON(product)
}

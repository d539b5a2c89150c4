package server

import (
	"dentalreach/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxCartQuantity = 99

// GetCart handles GET /api/cart
func (s *Server) GetCart(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var items []*models.CartItem
	if err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var totalCents int64
	for _, item := range items {
		if item.Product != nil {
			totalCents += item.Product.PriceCents * int64(item.Quantity)
		}
	}

	return c.JSON(fiber.Map{
		"items":       items,
		"total_cents": totalCents,
	})
}

// AddToCart handles POST /api/cart
func (s *Server) AddToCart(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ProductID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("product_id is required"))
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if req.Quantity > maxCartQuantity {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Quantity is too large"))
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !product.AdminApproved || !product.IsActive {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Product", req.ProductID))
	}

	// Adding the same product again bumps the quantity in place.
	item := &models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", req.Quantity),
		}),
	}).Create(item).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateCartItem handles PUT /api/cart/:productId
func (s *Server) UpdateCartItem(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	productID, err := s.parseID(c, "productId")
	if err != nil {
		return nil
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Quantity <= 0 || req.Quantity > maxCartQuantity {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Quantity must be between 1 and 99"))
	}

	result := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", req.Quantity)
	if result.Error != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("CartItem", productID))
	}

	return c.JSON(fiber.Map{"product_id": productID, "quantity": req.Quantity})
}

// RemoveFromCart handles DELETE /api/cart/:productId
func (s *Server) RemoveFromCart(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	productID, err := s.parseID(c, "productId")
	if err != nil {
		return nil
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("CartItem", productID))
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetWishlist handles GET /api/wishlist
func (s *Server) GetWishlist(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var items []*models.WishlistItem
	if err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(items)
}

// AddToWishlist handles POST /api/wishlist
func (s *Server) AddToWishlist(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ProductID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("product_id is required"))
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !product.AdminApproved || !product.IsActive {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Product", req.ProductID))
	}

	item := &models.WishlistItem{UserID: userID, ProductID: req.ProductID}
	// Re-adding an already saved product is a no-op.
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(item).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// RemoveFromWishlist handles DELETE /api/wishlist/:productId
func (s *Server) RemoveFromWishlist(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	productID, err := s.parseID(c, "productId")
	if err != nil {
		return nil
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("WishlistItem", productID))
	}

	return c.SendStatus(fiber.StatusNoContent)
}

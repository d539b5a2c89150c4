// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "dentalreach/docs" // swagger docs
	"dentalreach/internal/cache"
	"dentalreach/internal/config"
	"dentalreach/internal/database"
	"dentalreach/internal/middleware"
	"dentalreach/internal/models"
	"dentalreach/internal/notifications"
	"dentalreach/internal/observability"
	"dentalreach/internal/repository"
	"dentalreach/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// wireableHub is implemented by every WebSocket hub that can be wired to
// Redis pub/sub and gracefully shut down.
type wireableHub interface {
	Name() string
	StartWiring(ctx context.Context, n *notifications.Notifier) error
	Shutdown(ctx context.Context) error
}

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	db               *gorm.DB
	redis            *redis.Client
	app              *fiber.App
	promMiddleware   *fiberprometheus.FiberPrometheus
	shutdownCtx      context.Context
	shutdownFn       context.CancelFunc
	tracerShutdown   func(context.Context) error
	userRepo         repository.UserRepository
	articleRepo      repository.ArticleRepository
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	imageRepo        repository.ImageRepository
	notifier         *notifications.Notifier
	hub              *notifications.Hub
	hubs             []wireableHub // all hubs for wiring/shutdown iteration
	userService      *service.UserService
	sellerService    *service.SellerService
	reviewService    *service.ReviewService
	imageService     *service.ImageService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with a sqlite handle and an optional Redis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	productRepo := repository.NewProductRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("dentalreach-api")

	// Initialize tracing; with TRACING_ENABLED=false this installs a no-op
	// tracer and the shutdown func does nothing.
	tracerShutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "dentalreach-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing initialization failed: %w", err)
	}

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   prom,
		userRepo:         userRepo,
		articleRepo:      articleRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		imageRepo:        imageRepo,
		tracerShutdown:   tracerShutdown,
	}
	server.userService = service.NewUserService(server.userRepo)
	server.sellerService = service.NewSellerService(db)
	server.reviewService = service.NewReviewService(db)
	server.imageService = service.NewImageService(server.imageRepo)

	// Initialize notifier and hub if Redis is available
	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub()
		server.hubs = []wireableHub{server.hub}
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Tracing spans wrap everything below so the logger and handlers see the
	// span context.
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "DentalReach Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)

	// Public article routes
	articles := api.Group("/articles")
	articles.Get("/", s.GetArticles)
	articles.Get("/:id", s.GetArticle)
	api.Get("/journals", s.GetJournals)

	// Public forum routes
	threads := api.Group("/threads")
	threads.Get("/", s.GetThreads)
	threads.Get("/:id", s.GetThread)
	threads.Get("/:id/replies", s.GetThreadReplies)

	// Public event routes
	events := api.Group("/events")
	events.Get("/", s.GetEvents)
	events.Get("/:id", s.GetEvent)

	// Public job routes
	jobs := api.Group("/jobs")
	jobs.Get("/", s.GetJobs)
	jobs.Get("/:id", s.GetJob)

	// Public product routes
	products := api.Group("/products")
	products.Get("/", s.GetProducts)
	products.Get("/showcase", s.GetProductShowcase)
	products.Get("/:id", s.GetProduct)
	products.Get("/:id/images", s.GetProductImages)
	api.Get("/images/:id", s.GetImage)

	// Dentist directory (public, search is rate limited to absorb the
	// client's debounced keystroke queries)
	dentists := api.Group("/dentists")
	dentists.Get("/", s.GetDentists)
	dentists.Get("/search", middleware.RateLimit(
		s.redis, 30, time.Minute, "dentist_search"), s.SearchDentists)
	dentists.Get("/:id", s.GetDentist)
	dentists.Get("/:id/articles", s.GetDentistArticles)

	// Public profile aggregation and reviews
	api.Get("/profiles/:id", s.GetProfileAggregate)
	api.Get("/profiles/:id/reviews", s.GetProfileReviews)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Post("/:id/promote-admin", s.AdminRequired(), s.PromoteToAdmin)
	users.Post("/:id/demote-admin", s.AdminRequired(), s.DemoteFromAdmin)

	// WebSocket ticket issuance
	api.Post("/ws/ticket", s.AuthRequired(), s.IssueWSTicket)

	// Review routes
	protected.Get("/profiles/:id/reviews/me", s.GetMyReviewStatus)
	protected.Post("/profiles/:id/reviews", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_review"), s.CreateProfileReview)

	// Protected article routes
	protectedArticles := protected.Group("/articles")
	protectedArticles.Post("/", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "create_article"), s.CreateArticle)
	protectedArticles.Get("/mine/list", s.GetMyArticles)
	protectedArticles.Put("/:id", s.UpdateArticle)
	protectedArticles.Delete("/:id", s.DeleteArticle)

	// Protected forum routes
	protectedThreads := protected.Group("/threads")
	protectedThreads.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_thread"), s.CreateThread)
	protectedThreads.Post("/:id/replies", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_reply"), s.CreateThreadReply)
	protectedThreads.Delete("/:id", s.DeleteThread)

	// Protected event routes
	protectedEvents := protected.Group("/events")
	protectedEvents.Post("/", s.CreateEvent)
	protectedEvents.Post("/:id/register", s.RegisterForEvent)
	protectedEvents.Delete("/:id/register", s.CancelEventRegistration)
	protectedEvents.Get("/mine/registrations", s.GetMyEventRegistrations)

	// Protected job routes
	protectedJobs := protected.Group("/jobs")
	protectedJobs.Post("/", s.CreateJob)
	protectedJobs.Delete("/:id", s.DeleteJob)

	// Seller routes
	seller := protected.Group("/seller")
	seller.Post("/apply", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "seller_apply"), s.ApplyAsSeller)
	seller.Get("/status", s.GetSellerStatus)
	seller.Get("/application", s.GetMySellerApplication)

	// Seller product management (requires approved seller)
	sellerProducts := protected.Group("/seller/products")
	sellerProducts.Post("/", s.CreateProduct)
	sellerProducts.Get("/", s.GetMyProducts)
	sellerProducts.Put("/:id", s.UpdateProduct)
	sellerProducts.Delete("/:id", s.DeleteProduct)
	sellerProducts.Post("/:id/images", s.UploadProductImage)

	// Cart and wishlist routes
	cart := protected.Group("/cart")
	cart.Get("/", s.GetCart)
	cart.Post("/", s.AddToCart)
	cart.Put("/:productId", s.UpdateCartItem)
	cart.Delete("/:productId", s.RemoveFromCart)
	wishlist := protected.Group("/wishlist")
	wishlist.Get("/", s.GetWishlist)
	wishlist.Post("/", s.AddToWishlist)
	wishlist.Delete("/:productId", s.RemoveFromWishlist)

	// Notification routes
	notificationsGroup := protected.Group("/notifications")
	notificationsGroup.Get("/", s.GetNotifications)
	notificationsGroup.Get("/unread-count", s.GetUnreadNotificationCount)
	notificationsGroup.Post("/read-all", s.MarkAllNotificationsRead)
	notificationsGroup.Post("/:id/read", s.MarkNotificationRead)

	// Websocket endpoint - protected by AuthRequired
	ws := api.Group("/ws", s.AuthRequired())
	ws.Get("/", s.WebsocketHandler())

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	adminSellerApplications := admin.Group("/seller-applications")
	adminSellerApplications.Get("/", s.GetSellerApplications)
	adminSellerApplications.Post("/:id/approve", s.ApproveSellerApplication)
	adminSellerApplications.Post("/:id/reject", s.RejectSellerApplication)
	adminArticles := admin.Group("/articles")
	adminArticles.Get("/pending", s.GetPendingArticles)
	adminArticles.Post("/:id/approve", s.ApproveArticle)
	adminArticles.Post("/:id/reject", s.RejectArticle)
	adminProducts := admin.Group("/products")
	adminProducts.Get("/pending", s.GetPendingProducts)
	adminProducts.Post("/:id/approve", s.ApproveProduct)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is considered required for full readiness in this app
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "DentalReach",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdmin(c, userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		isWSPath := strings.HasPrefix(path, "/api/ws")

		// 1. Try WebSocket ticket first (short-lived, single-use)
		ticket := c.Query("ticket")
		if ticket != "" && s.redis != nil {
			key := fmt.Sprintf("ws_ticket:%s", ticket)
			userIDStr, err := s.redis.Get(c.Context(), key).Result()
			if err == nil {
				userID, parseErr := strconv.ParseUint(userIDStr, 10, 32)
				if parseErr == nil {
					// Delete ticket immediately (single-use)
					s.redis.Del(c.Context(), key)

					c.Locals("userID", uint(userID))
					ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
					c.SetUserContext(ctx)
					return c.Next()
				}
			}
			// If ticket was provided but invalid/expired, we fail if it's a WS path
			if isWSPath {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Invalid or expired WebSocket ticket"))
			}
		}

		// 2. Fall back to JWT (Bearer token or query param)
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Reject token in query param for WS routes (must use ticket)
		if tokenString == "" && !isWSPath {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, appErr := s.validateAccessToken(c.Context(), tokenString)
		if appErr != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}

		// Store user ID in context
		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// validateAccessToken parses an access token and enforces the full claim set:
// signing method, issuer, audience, subject and jti revocation. Both the
// mandatory and the optional auth paths go through here.
func (s *Server) validateAccessToken(ctx context.Context, tokenString string) (uint, *models.AppError) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "dentalreach-api" {
		return 0, models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "dentalreach-client" {
		return 0, models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}

	// Check JTI for revocation
	if jti, exists := claims["jti"].(string); exists && jti != "" {
		if s.redis != nil {
			isBlacklisted, err := s.redis.Exists(ctx, "blacklist:"+jti).Result()
			if err == nil && isBlacklisted > 0 {
				return 0, models.NewUnauthorizedError("Token has been revoked")
			}
		}
	}

	return uint(userID), nil
}

// optionalUserID attempts to extract userID from Authorization header but does not enforce it.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	userID, appErr := s.validateAccessToken(c.Context(), parts[1])
	if appErr != nil {
		return 0, false
	}
	return userID, true
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "DentalReach API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Wire all hubs to Redis subscriber if available
	if s.notifier != nil {
		for _, h := range s.hubs {
			h := h
			go func() {
				if err := h.StartWiring(s.shutdownCtx, s.notifier); err != nil {
					log.Printf("failed to start %s wiring: %v", h.Name(), err)
				}
			}()
		}
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop all wiring goroutines
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Shutdown the HTTP/WS server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close WebSocket connections gracefully
	for _, h := range s.hubs {
		if err := h.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", h.Name(), err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	// Flush and stop the tracer provider
	if s.tracerShutdown != nil {
		if terr := s.tracerShutdown(ctx); terr != nil {
			log.Printf("error shutting down tracer: %v", terr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}

// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	skillRepo        repository.SkillRepository
	swapRepo         repository.SwapRepository
	ratingRepo       repository.RatingRepository
	notificationRepo repository.NotificationRepository
	announcementRepo repository.AnnouncementRepository
	chatRepo         repository.ChatRepository

	userService         *service.UserService
	skillService        *service.SkillService
	swapService         *service.SwapService
	notificationService *service.NotificationService
	chatService         *service.ChatService
	adminService        *service.AdminService
	reportService       *service.ReportService
	photoService        *service.PhotoService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	chatRepo := repository.NewChatRepository(db)

	prom := middleware.InitMetrics("skillswap-api")

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   prom,
		userRepo:         userRepo,
		skillRepo:        skillRepo,
		swapRepo:         swapRepo,
		ratingRepo:       ratingRepo,
		notificationRepo: notificationRepo,
		announcementRepo: announcementRepo,
		chatRepo:         chatRepo,
	}

	server.userService = service.NewUserService(userRepo, skillRepo, swapRepo, ratingRepo)
	server.skillService = service.NewSkillService(skillRepo, userRepo, notificationRepo)
	server.swapService = service.NewSwapService(swapRepo, skillRepo, userRepo, ratingRepo, notificationRepo)
	server.notificationService = service.NewNotificationService(notificationRepo)
	server.chatService = service.NewChatService(chatRepo, userRepo)
	server.adminService = service.NewAdminService(userRepo, skillRepo, swapRepo, notificationRepo, announcementRepo)
	server.reportService = service.NewReportService(userRepo, skillRepo, swapRepo, ratingRepo)
	server.photoService = service.NewPhotoService(userRepo, cfg)

	return server, nil
}

// Shutdown releases the server's database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	return nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
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

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Public routes
	api.Get("/announcements", s.GetActiveAnnouncements)
	api.Get("/uploads/:filename", s.ServePhoto)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Get("/", s.BrowseUsers)
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/me/stats", s.GetMyStats)
	users.Post("/me/photo", s.UploadPhoto)
	users.Delete("/me/photo", s.DeletePhoto)
	// Specific /:id/:resource routes BEFORE generic /:id route
	users.Get("/:id/ratings", s.GetUserRatings)
	users.Get("/:id/rating-summary", s.GetUserRatingSummary)
	users.Get("/:id", s.GetUserProfile)

	// Skill routes
	skills := protected.Group("/skills")
	skills.Get("/", s.BrowseSkills)
	skills.Get("/me", s.GetMySkills)
	skills.Post("/", s.CreateSkill)
	skills.Put("/:id/resubmit", s.ResubmitSkill)
	skills.Delete("/:id", s.DeleteSkill)

	// Swap routes
	swaps := protected.Group("/swaps")
	swaps.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_swap"), s.CreateSwap)
	swaps.Get("/", s.GetMySwaps)
	// Specific /:id/:action routes BEFORE generic /:id route
	swaps.Post("/:id/accept", s.AcceptSwap)
	swaps.Post("/:id/reject", s.RejectSwap)
	swaps.Post("/:id/cancel", s.CancelSwap)
	swaps.Post("/:id/complete", s.CompleteSwap)
	swaps.Post("/:id/rate", s.RateSwap)
	swaps.Get("/:id", s.GetSwap)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.Get("/", s.GetNotifications)
	notifications.Get("/unread-count", s.GetUnreadNotificationCount)
	notifications.Post("/read-all", s.MarkAllNotificationsRead)
	notifications.Post("/:id/read", s.MarkNotificationRead)
	notifications.Delete("/:id", s.DeleteNotification)

	// Chat routes
	conversations := protected.Group("/conversations")
	conversations.Post("/", s.OpenConversation)
	conversations.Get("/", s.GetConversations)
	conversations.Get("/unread-count", s.GetUnreadMessageCount)
	conversations.Get("/:id/messages", s.GetMessages)
	conversations.Post("/:id/messages", middleware.RateLimit(
		s.redis, 15, time.Minute, "send_chat"), s.SendMessage)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/stats", s.GetPlatformStats)
	admin.Get("/users", s.GetAllUsers)
	admin.Get("/users/recent", s.GetRecentUsers)
	admin.Get("/swaps/recent", s.GetRecentSwaps)
	admin.Post("/users/:id/ban", s.BanUser)
	admin.Post("/users/:id/unban", s.UnbanUser)
	admin.Post("/users/:id/supervise", s.SuperviseUser)
	admin.Post("/users/:id/unsupervise", s.UnsuperviseUser)
	admin.Get("/skills", s.GetAllSkills)
	admin.Get("/skills/pending", s.GetPendingSkills)
	admin.Post("/skills/:id/approve", s.ApproveSkill)
	admin.Post("/skills/:id/reject", s.RejectSkill)
	admin.Get("/announcements", s.GetAllAnnouncements)
	admin.Post("/announcements", s.CreateAnnouncement)
	admin.Put("/announcements/:id", s.UpdateAnnouncement)
	admin.Delete("/announcements/:id", s.DeleteAnnouncement)
	admin.Post("/broadcast", s.BroadcastMessage)
	admin.Post("/quick-message", s.QuickMessage)
	reports := admin.Group("/reports")
	reports.Get("/user-activity", s.DownloadUserActivityReport)
	reports.Get("/feedback-logs", s.DownloadFeedbackLogsReport)
	reports.Get("/swap-stats", s.DownloadSwapStatsReport)
	reports.Get("/users", s.DownloadUsersReport)
}

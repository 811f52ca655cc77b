// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"offerhub/internal/cache"
	"offerhub/internal/config"
	"offerhub/internal/database"
	"offerhub/internal/middleware"
	"offerhub/internal/models"
	"offerhub/internal/repository"
	"offerhub/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	adminWallets   map[string]bool

	userRepo            repository.UserRepository
	serviceRepo         repository.ServiceRepository
	categoryRepo        repository.CategoryRepository
	serviceCategoryRepo repository.ServiceCategoryRepository
	convRepo            repository.ConversationRepository
	msgRepo             repository.MessageRepository
	txRepo              repository.TransactionRepository
	reviewRepo          repository.ReviewRepository
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	skillRepo           repository.SkillRepository
	freelancerSkillRepo repository.FreelancerSkillRepository
	activityRepo        repository.ActivityLogRepository

	userService        *service.UserService
	catalogService     *service.CatalogService
	chatService        *service.ChatService
	transactionService *service.TransactionService
	reviewService      *service.ReviewService
	achievementService *service.AchievementService
	skillService       *service.SkillService
	activityService    *service.ActivityService
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
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("offerhub-api"),
		adminWallets:   parseAdminWallets(cfg.AdminWallets),

		userRepo:            repository.NewUserRepository(db),
		serviceRepo:         repository.NewServiceRepository(db),
		categoryRepo:        repository.NewCategoryRepository(db),
		serviceCategoryRepo: repository.NewServiceCategoryRepository(db),
		convRepo:            repository.NewConversationRepository(db),
		msgRepo:             repository.NewMessageRepository(db),
		txRepo:              repository.NewTransactionRepository(db),
		reviewRepo:          repository.NewReviewRepository(db),
		achievementRepo:     repository.NewAchievementRepository(db),
		userAchievementRepo: repository.NewUserAchievementRepository(db),
		skillRepo:           repository.NewSkillRepository(db),
		freelancerSkillRepo: repository.NewFreelancerSkillRepository(db),
		activityRepo:        repository.NewActivityLogRepository(db),
	}

	server.userService = service.NewUserService(
		server.userRepo, server.freelancerSkillRepo, server.userAchievementRepo, server.activityRepo)
	server.catalogService = service.NewCatalogService(
		server.serviceRepo, server.categoryRepo, server.serviceCategoryRepo, server.userRepo)
	server.chatService = service.NewChatService(server.convRepo, server.msgRepo, server.userRepo)
	server.transactionService = service.NewTransactionService(
		server.txRepo, server.userRepo, server.activityRepo)
	server.reviewService = service.NewReviewService(server.reviewRepo, server.userRepo)
	server.achievementService = service.NewAchievementService(
		server.achievementRepo, server.userAchievementRepo, server.userRepo)
	server.skillService = service.NewSkillService(
		server.skillRepo, server.freelancerSkillRepo, server.userRepo)
	server.activityService = service.NewActivityService(server.activityRepo, server.userRepo)

	return server, nil
}

func parseAdminWallets(raw string) map[string]bool {
	wallets := make(map[string]bool)
	for _, w := range strings.Split(raw, ",") {
		w = strings.TrimSpace(w)
		if w != "" {
			wallets[w] = true
		}
	}
	return wallets
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

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
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

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Offer Hub Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes; specific /:id/:resource routes BEFORE generic /:id
	users := protected.Group("/users")
	users.Post("/", s.CreateUser)
	users.Get("/", s.GetUsers)
	users.Get("/:id/profile", s.GetUserProfile)
	users.Patch("/:id/deactivate", s.DeactivateUser)
	users.Get("/:id/reviews/summary", s.GetUserReviewSummary)
	users.Post("/:id/achievements", s.AwardAchievement)
	users.Get("/:id/achievements", s.GetUserAchievements)
	users.Get("/:id/skills", s.GetUserSkills)
	users.Get("/username/:username", s.GetUserByUsername)
	users.Get("/:id", s.GetUser)
	users.Patch("/:id", s.UpdateUser)
	users.Delete("/:id", s.DeleteUser)

	// Service (gig) routes
	services := protected.Group("/services")
	services.Post("/", s.CreateService)
	services.Get("/", s.GetServices)
	services.Get("/:id/categories", s.GetServiceCategories)
	services.Get("/:id", s.GetService)
	services.Patch("/:id", s.UpdateService)
	services.Delete("/:id", s.DeleteService)

	// Conversation routes
	conversations := protected.Group("/conversations")
	conversations.Post("/", s.CreateConversation)
	conversations.Get("/", s.GetConversations)
	conversations.Post("/:id/participants", s.AddParticipant)
	conversations.Get("/:id", s.GetConversation)

	// Message routes; /conversation/:conversationId BEFORE generic /:id
	messages := protected.Group("/messages")
	messages.Post("/", middleware.RateLimit(
		s.redis, 15, time.Minute, "send_message"), s.SendMessage)
	messages.Get("/conversation/:conversationId", s.GetConversationMessages)
	messages.Patch("/:id/read", s.MarkMessageRead)
	messages.Get("/:id", s.GetMessage)
	messages.Delete("/:id", s.DeleteMessage)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.Post("/", s.CreateTransaction)
	transactions.Get("/", s.GetTransactions)
	transactions.Patch("/:id/status", s.UpdateTransactionStatus)
	transactions.Get("/hash/:hash", s.GetTransactionByHash)
	transactions.Get("/:id", s.GetTransaction)
	transactions.Patch("/:id", s.UpdateTransaction)
	transactions.Delete("/:id", s.AdminRequired(), s.DeleteTransaction)

	// Review routes
	reviews := protected.Group("/reviews")
	reviews.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_review"), s.CreateReview)
	reviews.Get("/", s.GetReviews)
	reviews.Get("/:id", s.GetReview)
	reviews.Delete("/:id", s.DeleteReview)

	// Achievement catalog routes (catalog writes are admin only)
	achievements := protected.Group("/achievements")
	achievements.Post("/", s.AdminRequired(), s.CreateAchievement)
	achievements.Get("/", s.GetAchievements)
	achievements.Get("/:id", s.GetAchievement)
	achievements.Patch("/:id", s.AdminRequired(), s.UpdateAchievement)
	achievements.Delete("/:id", s.AdminRequired(), s.DeleteAchievement)

	// Skill catalog routes
	skills := protected.Group("/skills")
	skills.Post("/", s.CreateSkill)
	skills.Get("/", s.GetSkills)
	skills.Get("/:id", s.GetSkill)
	skills.Patch("/:id", s.UpdateSkill)
	skills.Delete("/:id", s.DeleteSkill)

	// Freelancer skill routes (composite key)
	freelancerSkills := protected.Group("/freelancer-skills")
	freelancerSkills.Post("/", s.AddFreelancerSkill)
	freelancerSkills.Get("/:userId/:skillId", s.GetFreelancerSkill)
	freelancerSkills.Patch("/:userId/:skillId", s.UpdateFreelancerSkill)
	freelancerSkills.Delete("/:userId/:skillId", s.RemoveFreelancerSkill)

	// Category routes
	categories := protected.Group("/categories")
	categories.Post("/", s.CreateCategory)
	categories.Get("/", s.GetCategories)
	categories.Get("/slug/:slug", s.GetCategoryBySlug)
	categories.Get("/:id", s.GetCategory)
	categories.Patch("/:id", s.UpdateCategory)
	categories.Delete("/:id", s.DeleteCategory)

	// Service/category link routes (composite key)
	serviceCategories := protected.Group("/service-categories")
	serviceCategories.Post("/", s.LinkServiceCategory)
	serviceCategories.Delete("/:serviceId/:categoryId", s.UnlinkServiceCategory)

	// Activity log routes
	activityLogs := protected.Group("/activity-logs")
	activityLogs.Post("/", s.RecordActivity)
	activityLogs.Get("/", s.GetActivityLogs)
	activityLogs.Get("/:id", s.GetActivityLog)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. The cache is optional:
// a missing Redis degrades to "unavailable" without failing readiness.
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
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "offerhub-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "offerhub-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
			isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
			if err == nil && isBlacklisted > 0 {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		// Store user ID in context
		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired rejects callers whose wallet address is not in the
// ADMIN_WALLETS allow-list. Must be placed after AuthRequired.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, mapServiceError(err), err)
		}
		if !s.adminWallets[user.WalletAddress] {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// NewApp builds the Fiber application with the server's error handling so
// framework-level errors (panics, body-limit rejections) render the same
// JSON envelope as handler errors. The app is recorded for Shutdown.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Offer Hub API",
		BodyLimit: 1 * 1024 * 1024, // 1MB limit
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app
	return app
}

// Start starts the server
func (s *Server) Start() error {
	app := s.NewApp()

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

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

	log.Println("Server shutdown complete")
	return nil
}

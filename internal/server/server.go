// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "bmxhive/docs" // swagger docs

	"bmxhive/internal/cache"
	"bmxhive/internal/config"
	"bmxhive/internal/database"
	"bmxhive/internal/middleware"
	"bmxhive/internal/models"
	"bmxhive/internal/repository"
	"bmxhive/internal/service"

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

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	trickRepo   repository.TrickRepository
	ticketRepo  repository.TicketRepository
	contentRepo repository.AdminContentRepository

	trickService      *service.TrickService
	profileService    *service.ProfileService
	moderationService *service.ModerationService
	uploadService     *service.UploadService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := database.Bootstrap(db, cfg); err != nil {
		return nil, fmt.Errorf("database bootstrap failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	trickRepo := repository.NewTrickRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	contentRepo := repository.NewAdminContentRepository(db)

	prom := middleware.InitMetrics("bmxhive-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		trickRepo:      trickRepo,
		ticketRepo:     ticketRepo,
		contentRepo:    contentRepo,
	}
	server.trickService = service.NewTrickService(trickRepo)
	server.profileService = service.NewProfileService(profileRepo, userRepo)
	server.moderationService = service.NewModerationService(userRepo, trickRepo, ticketRepo, contentRepo)
	server.uploadService = service.NewUploadService(cfg)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing spans per request
	app.Use(middleware.TracingMiddleware())

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

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
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

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "BMX Hive Metrics Dashboard",
	}))

	// API documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded avatars and trick videos
	app.Static("/uploads", s.uploadService.UploadDir())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/admin_login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "admin_login"), s.AdminLogin)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Public trick browsing
	api.Get("/tricks", s.GetTricks)
	api.Get("/tricks/:id", s.GetTrick)

	// Public leaderboard
	api.Get("/profile/leaderboard", s.Leaderboard)

	// Public site content
	api.Get("/content", s.GetContent)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// Profile routes
	profile := protected.Group("/profile")
	profile.Get("/me", s.GetMyProfile)
	profile.Put("/me", s.BanRequired(), s.UpdateMyProfile)
	profile.Post("/add-points", s.BanRequired(), s.AddPoints)
	profile.Post("/avatar", s.BanRequired(), s.UploadAvatar)
	profile.Post("/video", s.BanRequired(), s.UploadTrickVideo)

	// Trick forum routes
	tricks := protected.Group("/tricks")
	tricks.Post("/", s.BanRequired(), middleware.RateLimit(
		s.redis, 5, time.Minute, "create_trick"), s.CreateTrick)
	tricks.Post("/:id/like", s.BanRequired(), s.ToggleLike)

	// Report tickets
	protected.Post("/tickets", s.BanRequired(), middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "file_ticket"), s.CreateTicket)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/posts", s.GetAdminPosts)
	admin.Delete("/posts/:id", s.DeleteAdminPost)
	admin.Get("/users", s.GetAdminUsers)
	admin.Put("/users/:id/ban", s.SetUserBan)
	admin.Put("/users/profile", s.UpdateAdminProfile)
	admin.Get("/tickets", s.GetTickets)
	admin.Get("/content", s.GetContent)
	admin.Post("/content", s.CreateContent)
	admin.Delete("/content/:id", s.DeleteContent)
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
		// The app degrades to cacheless operation without Redis.
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

// AuthRequired returns the authentication middleware. The token only
// identifies the caller; role and ban state are re-read from the database
// on every request so moderation takes effect immediately.
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

		// Parse and validate token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			// Validate signing method
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

		// Validate issuer and audience
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		// Extract user ID from subject claim
		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, parseErr := strconv.ParseUint(sub, 10, 32)
		if parseErr != nil || userID == 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		// Live read: a deleted account means the token is dead too.
		user, err := s.userRepo.GetByID(c.Context(), uint(userID))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Account no longer exists"))
		}

		identity := models.Identity{
			ID:     user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Admin:  user.IsAdmin(),
			Banned: user.Banned,
		}
		c.Locals("userID", user.ID)
		c.Locals("identity", identity)

		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// BanRequired returns middleware that rejects banned users with 403.
// Must be placed after AuthRequired so the identity is available in locals.
func (s *Server) BanRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := s.identity(c)
		if identity.Banned {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewBannedError())
		}
		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so the identity is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := s.identity(c)
		if !identity.Admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewNotAdminError())
		}
		return c.Next()
	}
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	// Close database connection
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				middleware.Logger.Error("error closing sql DB", "error", cerr)
			}
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	return nil
}

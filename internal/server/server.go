// Package server contains HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"criminaldiaries/internal/cache"
	"criminaldiaries/internal/config"
	"criminaldiaries/internal/database"
	"criminaldiaries/internal/middleware"
	"criminaldiaries/internal/models"
	"criminaldiaries/internal/observability"
	"criminaldiaries/internal/repository"
	"criminaldiaries/internal/service"

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

const (
	tokenIssuer   = "criminaldiaries-api"
	tokenAudience = "criminaldiaries-client"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	promMiddleware  *fiberprometheus.FiberPrometheus
	tracingShutdown func(context.Context) error
	userRepo        repository.UserRepository
	storyRepo       repository.StoryRepository
	commentRepo     repository.CommentRepository
	statsRepo       repository.StatsRepository
	storyService    *service.StoryService
	commentService  *service.CommentService
	userService     *service.UserService
	statsService    *service.StatsService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := database.EnsureAdmin(context.Background(), db, cfg); err != nil {
		return nil, fmt.Errorf("admin bootstrap failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "criminaldiaries-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing setup failed: %w", err)
	}

	srv := newServer(cfg, db, cache.GetClient())
	srv.tracingShutdown = shutdown
	return srv, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return newServer(cfg, db, redisClient)
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("criminaldiaries-api"),
		userRepo:       userRepo,
		storyRepo:      storyRepo,
		commentRepo:    commentRepo,
		statsRepo:      statsRepo,
		storyService:   service.NewStoryService(storyRepo),
		commentService: service.NewCommentService(commentRepo, storyRepo),
		userService:    service.NewUserService(userRepo),
		statsService:   service.NewStatsService(statsRepo),
	}
}

// Shutdown releases server resources (Redis connection, tracer provider).
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.tracingShutdown != nil {
		return s.tracingShutdown(ctx)
	}
	return nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing before the context middleware so traceID lands in locals
	app.Use(middleware.TracingMiddleware())

	// Context middleware to propagate request ID / user ID / trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
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
			return c.Status(fiber.StatusTooManyRequests).JSON(models.Response{
				Success: false,
				Message: "Too many requests, please try again later.",
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
		Title: "Criminal Diaries Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", s.AuthRequired(), s.Me)

	// Public story routes
	publicStories := api.Group("/stories")
	publicStories.Get("/", s.GetStories)
	publicStories.Get("/:id", s.GetStory)

	// Public comment routes
	api.Get("/comments/story/:storyId", s.GetStoryComments)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	stories := protected.Group("/stories")
	stories.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_story"), s.CreateStory)
	// Define the /:id/like route BEFORE the generic /:id routes
	stories.Put("/:id/like", s.LikeStory)
	stories.Put("/:id", s.UpdateStory)
	stories.Delete("/:id", s.DeleteStory)

	comments := protected.Group("/comments")
	comments.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	comments.Delete("/:id", s.DeleteComment)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/users", s.AdminGetUsers)
	admin.Put("/users/:id", s.AdminUpdateUserRole)
	admin.Delete("/users/:id", s.AdminDeleteUser)
	admin.Get("/stories", s.AdminGetStories)
	admin.Delete("/stories/:id", s.AdminDeleteStory)
	admin.Get("/comments", s.AdminGetComments)
	admin.Delete("/comments/:id", s.AdminDeleteComment)
	admin.Get("/stats", s.AdminGetStats)
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
		// Cache is optional; the API serves from the database without it.
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

// AuthRequired returns the authentication middleware. It validates the bearer
// token and re-reads the user record on every request so role changes take
// effect immediately, without a new login.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := s.parseBearer(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid or missing token"))
		}

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("User no longer exists"))
		}

		c.Locals("userID", user.ID)
		c.Locals("userRole", user.Role)

		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userRole is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(models.Role)
		if role != models.RoleAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

// parseBearer extracts and validates the JWT from the Authorization header,
// returning the subject user ID.
func (s *Server) parseBearer(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, false
	}

	return uint(userID), true
}

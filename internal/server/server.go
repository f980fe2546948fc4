// Package server contains the HTTP handlers for the bucketlist API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "bucketlist/docs" // swagger docs
	"bucketlist/internal/auth"
	"bucketlist/internal/cache"
	"bucketlist/internal/config"
	"bucketlist/internal/database"
	"bucketlist/internal/middleware"
	"bucketlist/internal/models"
	"bucketlist/internal/repository"
	"bucketlist/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "bucketlist-api"

// Server holds all dependencies and provides handlers
type Server struct {
	config            *config.Config
	db                *gorm.DB
	redis             *redis.Client
	app               *fiber.App
	promMiddleware    *fiberprometheus.FiberPrometheus
	rateLimiter       *middleware.RateLimiter
	authService       *service.AuthService
	bucketlistService *service.BucketlistService
	itemService       *service.ItemService
}

// NewServer creates a new server instance, connecting to the database and Redis from cfg.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.InitRedis(cfg.RedisURL))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case caching is skipped and rate limits fail open.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	tokens, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	bucketlistRepo := repository.NewBucketlistRepository(db, cache.New(redisClient))
	itemRepo := repository.NewItemRepository(db)
	tx := repository.NewTransactor(db)

	return &Server{
		config:            cfg,
		db:                db,
		redis:             redisClient,
		promMiddleware:    middleware.InitMetrics(serviceName),
		rateLimiter:       middleware.NewRateLimiter(redisClient, cfg.Env, middleware.FailOpen),
		authService:       service.NewAuthService(userRepo, tokens, cfg.BcryptCost),
		bucketlistService: service.NewBucketlistService(tx, bucketlistRepo, itemRepo),
		itemService:       service.NewItemService(tx, bucketlistRepo, itemRepo),
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Spans first so the trace ID is available to the context middleware
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate request and trace IDs
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Status:  "fail",
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	v1 := app.Group("/v1")

	// Swagger documentation
	v1.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", s.rateLimiter.Limit("register", 5, 10*time.Minute), s.Register)
	authRoutes.Post("/login", s.rateLimiter.Limit("login", 10, 5*time.Minute), s.Login)
	authRoutes.Get("/me", s.AuthRequired(), s.Me)

	// Bucketlist routes
	bucketlists := v1.Group("/bucketlists", s.AuthRequired())
	bucketlists.Post("/", s.CreateBucketlist)
	bucketlists.Get("/", s.ListBucketlists)

	// Item routes nested under their bucketlist
	bucketlists.Post("/:id/items", s.CreateItem)
	bucketlists.Get("/:id/items", s.ListItems)
	bucketlists.Get("/:id/items/:itemId", s.GetItem)
	bucketlists.Put("/:id/items/:itemId", s.UpdateItem)
	bucketlists.Delete("/:id/items/:itemId", s.DeleteItem)

	bucketlists.Get("/:id", s.GetBucketlist)
	bucketlists.Put("/:id", s.UpdateBucketlist)
	bucketlists.Delete("/:id", s.DeleteBucketlist)
}

// App builds the Fiber application with all middleware and routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Bucketlist API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Status: "fail", Message: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: a missing
// client is reported but does not make the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
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

// AuthRequired returns the authentication middleware. Only "Authorization: Bearer <token>" is accepted.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return models.Respond(c, models.NewUnauthenticatedError("Authorization required"))
		}

		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || tokenString == "" || strings.Contains(tokenString, " ") {
			return models.Respond(c, models.NewUnauthenticatedError("Authorization header must be 'Bearer <token>'"))
		}

		identity, err := s.authService.Authenticate(tokenString)
		if err != nil {
			return models.Respond(c, err)
		}

		c.Locals(middleware.LocalsIdentity, identity)
		// Sync to UserContext for logging and downstream services
		c.SetUserContext(middleware.WithIdentity(c.UserContext(), identity))

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.App()

	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}

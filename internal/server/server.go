// Package server wires the HTTP layer: routing, middleware and handlers.
package server

import (
	"context"
	"fmt"
	"time"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/database"
	"devlink/internal/middleware"
	"devlink/internal/repository"
	"devlink/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "devlink/docs"
)

// Server holds the application's dependencies and the Fiber instance.
type Server struct {
	app    *fiber.App
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client

	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository

	userService    *service.UserService
	profileService *service.ProfileService
	postService    *service.PostService

	prometheus *fiberprometheus.FiberPrometheus
}

// NewServer constructs a fully wired server: config, database, cache,
// repositories and services.
func NewServer() (*Server, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	// Redis is optional; a nil client degrades caching and rate limiting.
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps constructs a server from pre-built dependencies.
// Tests use this to inject in-memory databases and miniredis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:      "devlink-api",
			ErrorHandler: errorHandler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}),
		config:         cfg,
		db:             db,
		redis:          rdb,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		userService:    service.NewUserService(userRepo, db),
		profileService: service.NewProfileService(profileRepo, userRepo),
		postService:    service.NewPostService(postRepo, userRepo),
	}

	s.SetupMiddleware()
	s.SetupRoutes()
	return s
}

// App exposes the Fiber instance, primarily for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// errorHandler converts unhandled Fiber errors into the standard error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// SetupMiddleware installs the global middleware chain.
func (s *Server) SetupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())

	if s.config.TracingEnabled {
		s.app.Use(middleware.TracingMiddleware())
	}
	s.app.Use(middleware.ContextMiddleware())

	s.prometheus = middleware.InitMetrics("devlink-api")
	s.prometheus.RegisterAt(s.app, "/metrics")
	s.app.Use(middleware.MetricsMiddleware(s.prometheus))

	s.app.Use(helmet.New())
	s.app.Use(middleware.StructuredLogger())

	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
}

// SetupRoutes registers every HTTP route.
func (s *Server) SetupRoutes() {
	s.app.Get("/health", s.healthHandler)
	s.app.Get("/health/live", s.healthHandler)
	s.app.Get("/health/ready", s.readinessHandler)
	s.app.Get("/monitor", monitor.New(monitor.Config{Title: "devlink metrics"}))
	s.app.Get("/swagger/*", swagger.HandlerDefault)

	api := s.app.Group("/api")

	// Registration and login are the abuse-prone endpoints.
	api.Post("/users",
		middleware.RateLimit(s.redis, 10, time.Minute, "register"),
		s.registerHandler)
	api.Post("/auth",
		middleware.RateLimit(s.redis, 20, time.Minute, "login"),
		s.loginHandler)
	api.Get("/auth", s.AuthRequired(), s.currentUserHandler)

	profile := api.Group("/profile")
	profile.Get("/me", s.AuthRequired(), s.myProfileHandler)
	profile.Get("/user/:user_id", s.profileByUserHandler)
	profile.Get("/", s.listProfilesHandler)
	profile.Post("/", s.AuthRequired(), s.upsertProfileHandler)
	profile.Delete("/", s.AuthRequired(), s.deleteAccountHandler)
	profile.Put("/experience", s.AuthRequired(), s.addExperienceHandler)
	profile.Delete("/experience/:exp_id", s.AuthRequired(), s.removeExperienceHandler)
	profile.Put("/education", s.AuthRequired(), s.addEducationHandler)
	profile.Delete("/education/:edu_id", s.AuthRequired(), s.removeEducationHandler)

	posts := api.Group("/posts", s.AuthRequired())
	posts.Post("/", s.createPostHandler)
	posts.Get("/", s.listPostsHandler)
	posts.Put("/like/:id", s.likePostHandler)
	posts.Put("/unlike/:id", s.unlikePostHandler)
	posts.Post("/comment/:id", s.addCommentHandler)
	posts.Delete("/comment/:id/:comment_id", s.removeCommentHandler)
	posts.Get("/:id", s.getPostHandler)
	posts.Delete("/:id", s.deletePostHandler)
}

func (s *Server) healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// readinessHandler verifies the database (and Redis when configured) are
// reachable.
func (s *Server) readinessHandler(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"reason": "database unreachable",
		})
	}

	status := fiber.Map{"status": "ok", "database": "up"}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			status["cache"] = "down"
		} else {
			status["cache"] = "up"
		}
	}
	return c.JSON(status)
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	addr := ":" + s.config.Port
	middleware.Logger.Info("starting server", "addr", addr, "env", s.config.Env)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

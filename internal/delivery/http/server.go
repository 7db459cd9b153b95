package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/config"
	"github.com/together-as-one/internal/delivery/http/handler"
	"github.com/together-as-one/internal/delivery/http/middleware"
	"github.com/together-as-one/internal/pkg/metrics"
)

// HealthChecker - зависимость, доступность которой отражается в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers - набор обработчиков API
type Handlers struct {
	WaterPoint   *handler.WaterPointHandler
	Session      *handler.SessionHandler
	Registration *handler.RegistrationHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app       *fiber.App
	config    *config.Config
	logger    *zap.Logger
	handlers  Handlers
	collector *metrics.Collector
	checks    map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера. collector may be nil.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	handlers Handlers,
	collector *metrics.Collector,
	checks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Together As One",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:       app,
		config:    cfg,
		logger:    logger,
		handlers:  handlers,
		collector: collector,
		checks:    checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	if s.collector != nil {
		s.app.Use(middleware.Metrics(s.collector))
	}
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.collector != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(s.collector.Handler()))
	}

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Water points
	api.Get("/water-points", s.handlers.WaterPoint.Find)
	api.Get("/water-points/:id", s.handlers.WaterPoint.GetByID)
	api.Get("/areas", s.handlers.WaterPoint.ListAreas)

	// Finder sessions
	sessions := api.Group("/sessions")
	sessions.Post("/", s.handlers.Session.Create)
	sessions.Get("/:id", s.handlers.Session.Get)
	sessions.Delete("/:id", s.handlers.Session.Delete)
	sessions.Patch("/:id/filters", s.handlers.Session.UpdateFilters)
	sessions.Put("/:id/search", s.handlers.Session.SetSearch)
	sessions.Put("/:id/location", s.handlers.Session.SetLocation)
	sessions.Put("/:id/custom-location", s.handlers.Session.SetCustomLocation)
	sessions.Delete("/:id/custom-location", s.handlers.Session.ClearCustomLocation)
	sessions.Put("/:id/viewport", s.handlers.Session.SetViewport)
	sessions.Post("/:id/reset", s.handlers.Session.Reset)
	sessions.Post("/:id/retry", s.handlers.Session.Retry)

	// Community forms
	api.Post("/registrations", s.handlers.Registration.Register)
	api.Post("/subscriptions", s.handlers.Registration.Subscribe)
}

// health reports every dependency; any failure turns the response into 503.
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	deps := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check.Health(ctx); err != nil {
			s.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "unavailable"
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}

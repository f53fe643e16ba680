package server

import (
	"context"

	"ai-workspace-be/internal/bootstrap"
	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/pkg/serverutils"

	"github.com/fatih/color"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// multipartOverhead leaves room for boundaries and part headers above the upload ceiling.
const multipartOverhead = 1 << 20

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(cfg.Upload.MaxBytes) + multipartOverhead,
		ErrorHandler:          serverutils.FiberErrorHandler(container.Logger),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept",
		AllowMethods:  "GET, POST, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (no-op unless a tracer provider is installed)
	app.Use(otelfiber.Middleware())

	if cfg.Telemetry.MetricsEnabled {
		app.Use(metrics.Middleware())
	}

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	color.Green("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	color.Cyan("   store=%s provider=%s uploads=%s", s.container.Store.Driver(), s.cfg.Ai.Provider, s.cfg.Upload.Dir)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	c.HealthController.RegisterRoutes(app)
	if cfg.Telemetry.MetricsEnabled {
		app.Get("/metrics", metrics.Handler())
	}

	api := app.Group("/api")
	c.FileController.RegisterRoutes(api)
	c.ChatController.RegisterRoutes(api)
}

// Package http serves the admin endpoints: liveness, readiness and metrics.
package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/samirrijal/routeguide/internal/pkg/metrics"
)

// NewApp creates the admin Fiber app with routes registered.
func NewApp(deps *Dependencies, readTimeout, writeTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           readTimeout,
		WriteTimeout:          writeTimeout,
		AppName:               "RouteGuide Admin",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})
	SetupRoutes(app, deps)
	return app
}

// SetupRoutes registers the admin routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(recover.New())

	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("Cache-Control", "no-store")
		return c.Next()
	})

	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))
}

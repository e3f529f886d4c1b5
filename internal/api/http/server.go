package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-tracker/internal/api/http/handlers"
)

// NewProbeApp builds the fiber app serving the health endpoints.
func NewProbeApp(logger *zap.Logger, health *handlers.HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterMiddlewares(app, logger)
	RegisterRoutes(app, RouteConfig{Health: health})
	return app
}

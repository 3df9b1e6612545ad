package httpapi

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/soaring-forecast/internal/health"
)

// NewApp builds the Fiber app with the shared middleware and error handler.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":     true,
				"message":   err.Error(),
				"requestId": c.GetRespHeader(fiber.HeaderXRequestID),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	return app
}

// RegisterHealth exposes the liveness endpoint.
func RegisterHealth(app *fiber.App, checker *health.Checker) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(checker.Check())
	})
}

// MountPage serves everything not matched by earlier routes (page shell,
// wasm bundle, static assets) from the go-app handler.
func MountPage(app *fiber.App, page http.Handler) {
	app.Use(adaptor.HTTPHandler(page))
}

package httpapi

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/soaring-forecast/internal/forecast"
	"github.com/i474232898/soaring-forecast/internal/loader"
)

var validate = validator.New()

//go:embed templates/forecast.html
var templateFS embed.FS

var forecastTmpl = template.Must(template.ParseFS(templateFS, "templates/forecast.html"))

// ForecastService is the part of forecast.Service the handlers use.
type ForecastService interface {
	View(ctx context.Context, locationID string) (forecast.View, error)
}

// Options configures which locations the handlers serve.
type Options struct {
	// DefaultLocation is rendered by /get-forecast.
	DefaultLocation string
	// HasLocation reports whether the JSON API may serve a location. When
	// nil only DefaultLocation is served.
	HasLocation func(id string) bool
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service ForecastService, opts Options) {
	allowed := opts.HasLocation
	if allowed == nil {
		allowed = func(id string) bool { return id == opts.DefaultLocation }
	}

	// Rendered fragment for the page loader. Any failure is a non-2xx so
	// the page shows its error state.
	app.Get(loader.ForecastPath, func(c *fiber.Ctx) error {
		view, err := service.View(c.UserContext(), opts.DefaultLocation)
		if err != nil {
			log.Printf("ERROR: get-forecast for %s: %v", opts.DefaultLocation, err)
			return fiber.NewError(fiber.StatusBadGateway, "forecast unavailable")
		}

		var buf bytes.Buffer
		if err := forecastTmpl.Execute(&buf, view); err != nil {
			log.Printf("ERROR: rendering forecast: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render forecast")
		}

		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		q, err := parseForecastQuery(c, opts.DefaultLocation)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if !allowed(q.Location) {
			return fiber.NewError(fiber.StatusNotFound, "location is not configured")
		}

		view, err := service.View(c.UserContext(), q.Location)
		if err != nil {
			log.Printf("ERROR: forecast api for %s: %v", q.Location, err)
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch forecast")
		}

		return c.JSON(fiber.Map{
			"location": q.Location,
			"forecast": view,
		})
	})
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Location string `validate:"required,numeric"`
}

func parseForecastQuery(c *fiber.Ctx, def string) (forecastQuery, error) {
	q := forecastQuery{Location: c.Query("location", def)}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

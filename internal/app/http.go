package app

import (
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "claimsapi/docs"
	handlers "claimsapi/internal/http/handler"
	"claimsapi/internal/http/middleware"
)

// HTTP builds the Fiber application serving the claims API.
func (a *App) HTTP() (*fiber.App, error) {
	prom, err := middleware.NewPrometheusMiddleware(a.Registry, "/healthz")
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		AppName:      "claimsapi",
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(a.Log))
	app.Use(prom.Handler())
	app.Use(middleware.Timeout(a.Config.RequestTimeout()))

	handlers.RegisterRoutes(app, a.Store, a.Registry, a.Claims, a.Log)

	// The doc is rendered without host or schemes, so the UI targets the
	// origin it was loaded from.
	app.Get("/swagger/*", swagger.HandlerDefault)
	return app, nil
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/theleywin/Backend-DevConnect/src/controllers"
	"github.com/theleywin/Backend-DevConnect/src/metrics"
)

// SystemRoutes sets up the health check and the Prometheus scrape endpoint
func SystemRoutes(app *fiber.App, deps Deps) {
	app.Get("/healthz", controllers.Health(deps.Store))
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}

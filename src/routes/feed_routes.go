package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/Backend-DevConnect/src/controllers"
	"github.com/theleywin/Backend-DevConnect/src/middleware"
)

func FeedRoutes(app *fiber.App, deps Deps) {
	app.Get("/feed", middleware.ProtectRoute(deps.Auth), controllers.GetFeed(deps.Feed))
}

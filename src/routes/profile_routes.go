package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/Backend-DevConnect/src/controllers"
	"github.com/theleywin/Backend-DevConnect/src/middleware"
)

// ProfileRoutes sets up viewing and editing the caller's own profile
func ProfileRoutes(app *fiber.App, deps Deps) {
	protect := middleware.ProtectRoute(deps.Auth)
	profile := app.Group("/profile")

	profile.Get("/view", protect, controllers.ViewProfile())
	profile.Patch("/edit", protect, controllers.EditProfile(deps.Profiles))
}

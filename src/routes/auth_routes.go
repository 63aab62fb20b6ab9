package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/Backend-DevConnect/src/controllers"
)

// AuthRoutes sets up signup, login and logout
func AuthRoutes(app *fiber.App, deps Deps) {
	app.Post("/signup", controllers.Signup(deps.Config, deps.Auth))
	app.Post("/login", controllers.Login(deps.Config, deps.Auth))
	app.Post("/logout", controllers.Logout(deps.Config))
}

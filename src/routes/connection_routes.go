package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/Backend-DevConnect/src/controllers"
	"github.com/theleywin/Backend-DevConnect/src/middleware"
)

// ConnectionRoutes sets up sending and reviewing requests and listing pending and accepted connections.
// The gate is attached per route since a group prefix of /connection would also match /connections.
func ConnectionRoutes(app *fiber.App, deps Deps) {
	protect := middleware.ProtectRoute(deps.Auth)
	connection := app.Group("/connection")

	connection.Post("/send/:status/:toUserId", protect, controllers.SendConnectionRequest(deps.Connections))
	connection.Post("/review/:status/:toUserId", protect, controllers.ReviewConnectionRequest(deps.Connections))
	connection.Get("/requests", protect, controllers.GetConnectionRequests(deps.Connections))
	connection.Get("/sent", protect, controllers.GetSentRequests(deps.Connections))
	app.Get("/connections", protect, controllers.GetUserConnections(deps.Connections))
}

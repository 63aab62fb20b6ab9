// Package server assembles the fiber application: middleware, services and routes.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
	"github.com/theleywin/Backend-DevConnect/src/config"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/routes"
	"github.com/theleywin/Backend-DevConnect/src/services"
	"github.com/theleywin/Backend-DevConnect/src/store"
)

func New(cfg *config.Config, s store.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "devconnect",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: cuid2.Generate,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PATCH,OPTIONS",
		AllowCredentials: true,
	}))

	tokens := lib.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	deps := routes.Deps{
		Config:      cfg,
		Store:       s,
		Auth:        services.NewAuthService(s, tokens, cfg.BcryptCost),
		Connections: services.NewConnectionService(s, s),
		Feed:        services.NewFeedService(s, s),
		Profiles:    services.NewProfileService(s),
	}

	routes.AuthRoutes(app, deps)
	routes.ProfileRoutes(app, deps)
	routes.ConnectionRoutes(app, deps)
	routes.FeedRoutes(app, deps)
	routes.SystemRoutes(app, deps)

	return app
}

// errorHandler keeps every error response JSON shaped.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Errorf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(lib.MessageResponse(message))
}

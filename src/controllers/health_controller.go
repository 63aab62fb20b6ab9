package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/labstack/gommon/log"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness and whether the store answers a ping
func Health(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Warnf("health check: store ping failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

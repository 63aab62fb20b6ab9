package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/labstack/gommon/log"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"github.com/theleywin/Backend-DevConnect/src/services"
)

const UserKey = "user"

// ProtectRoute checks the token cookie (or a Bearer header), authenticates the
// user and attaches it to the request context under UserKey
func ProtectRoute(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized"))
		}

		user, err := auth.Authenticate(c.Context(), token)
		if errors.Is(err, models.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized"))
		}
		if err != nil {
			log.Errorf("authenticating request: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
		}

		c.Locals(UserKey, *user)
		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(lib.TokenCookieName); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// CurrentUser returns the user attached by ProtectRoute.
func CurrentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals(UserKey).(models.User)
	return user
}

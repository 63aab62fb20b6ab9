package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/Backend-DevConnect/src/config"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"github.com/theleywin/Backend-DevConnect/src/services"
)

// Signup registers a user, sets the token cookie and returns the new profile
func Signup(cfg *config.Config, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input models.SignupInput
		if err := c.BodyParser(&input); err != nil {
			return invalidBody(c)
		}

		user, token, err := auth.Signup(c.Context(), input)
		if err != nil {
			return respondError(c, "signup", err)
		}

		setTokenCookie(c, cfg, token)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User created successfully",
			"user":    user,
		})
	}
}

// Login checks email and password, sets the token cookie and returns the profile
func Login(cfg *config.Config, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input models.LoginInput
		if err := c.BodyParser(&input); err != nil {
			return invalidBody(c)
		}

		user, token, err := auth.Login(c.Context(), input)
		if err != nil {
			return respondError(c, "login", err)
		}

		setTokenCookie(c, cfg, token)
		return c.JSON(fiber.Map{
			"message": "Login successful",
			"user":    user,
		})
	}
}

// Logout clears the token cookie
func Logout(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     lib.TokenCookieName,
			Value:    "",
			Expires:  time.Now().Add(-1 * time.Hour),
			HTTPOnly: true,
			Secure:   cfg.IsProduction(),
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
		return c.JSON(lib.MessageResponse("Logout successful"))
	}
}

func setTokenCookie(c *fiber.Ctx, cfg *config.Config, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     lib.TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(cfg.TokenTTL),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/Backend-DevConnect/src/middleware"
	"github.com/theleywin/Backend-DevConnect/src/services"
)

func ViewProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		return c.JSON(fiber.Map{"user": user})
	}
}

// EditProfile applies a partial update of the whitelisted profile fields
func EditProfile(profiles *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := profiles.Edit(c.Context(), middleware.CurrentUser(c), c.Body())
		if err != nil {
			return respondError(c, "edit profile", err)
		}
		return c.JSON(fiber.Map{
			"message": user.FirstName + ", your profile was updated successfully",
			"user":    user,
		})
	}
}

package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/labstack/gommon/log"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/models"
)

// respondError maps a service error onto its HTTP status. Anything it does not
// recognise is logged under op and answered with a generic 500.
func respondError(c *fiber.Ctx, op string, err error) error {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		body := lib.MessageResponse(validationErr.Message)
		if validationErr.Field != "" {
			body["field"] = validationErr.Field
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, models.ErrSelfRequest):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You cannot send a connection request to yourself"))
	case errors.Is(err, models.ErrDuplicateRequest):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Connection request already exists"))
	case errors.Is(err, models.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email already exists"))
	case errors.Is(err, models.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Invalid credentials"))
	case errors.Is(err, models.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized"))
	case errors.Is(err, models.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
	case errors.Is(err, models.ErrRequestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Connection request not found or already reviewed"))
	default:
		log.Errorf("%s: %v", op, err)
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
}

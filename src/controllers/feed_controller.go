package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/middleware"
	"github.com/theleywin/Backend-DevConnect/src/services"
)

// GetFeed pages through users the authenticated user has no connection record with
func GetFeed(feed *services.FeedService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", services.DefaultFeedLimit)

		users, err := feed.Feed(c.Context(), middleware.CurrentUser(c), page, limit)
		if err != nil {
			return respondError(c, "feed", err)
		}
		if len(users) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("No users found in feed"))
		}
		return c.JSON(fiber.Map{
			"message": "Feed fetched successfully",
			"data":    users,
		})
	}
}

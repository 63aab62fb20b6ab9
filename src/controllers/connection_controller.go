package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/Backend-DevConnect/src/lib"
	"github.com/theleywin/Backend-DevConnect/src/middleware"
	"github.com/theleywin/Backend-DevConnect/src/models"
	"github.com/theleywin/Backend-DevConnect/src/services"
)

// SendConnectionRequest opens a request from the authenticated user to :toUserId
func SendConnectionRequest(connections *services.ConnectionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := models.ConnectionStatus(c.Params("status"))
		conn, target, err := connections.Send(c.Context(), middleware.CurrentUser(c), c.Params("toUserId"), status)
		if err != nil {
			return respondError(c, "send connection request", err)
		}

		return c.JSON(fiber.Map{
			"message": target.DisplayName() + " " + string(conn.Status),
			"data":    conn,
		})
	}
}

// ReviewConnectionRequest accepts or rejects the pending request :toUserId sent to the authenticated user
func ReviewConnectionRequest(connections *services.ConnectionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := models.ConnectionStatus(c.Params("status"))
		conn, requester, err := connections.Review(c.Context(), middleware.CurrentUser(c), c.Params("toUserId"), status)
		if err != nil {
			return respondError(c, "review connection request", err)
		}

		return c.JSON(fiber.Map{
			"message": "Connection request from " + requester.DisplayName() + " " + string(conn.Status),
			"data":    conn,
		})
	}
}

// GetConnectionRequests lists pending requests received by the authenticated user
func GetConnectionRequests(connections *services.ConnectionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requests, err := connections.ListIncoming(c.Context(), middleware.CurrentUser(c))
		if err != nil {
			return respondError(c, "list incoming requests", err)
		}
		if len(requests) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("No connection requests found"))
		}
		return c.JSON(fiber.Map{
			"message": "Connection requests fetched successfully",
			"data":    requests,
		})
	}
}

// GetSentRequests lists pending requests sent by the authenticated user
func GetSentRequests(connections *services.ConnectionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requests, err := connections.ListOutgoing(c.Context(), middleware.CurrentUser(c))
		if err != nil {
			return respondError(c, "list sent requests", err)
		}
		if len(requests) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("No sent connection requests found"))
		}
		return c.JSON(fiber.Map{
			"message": "Sent connection requests fetched successfully",
			"data":    requests,
		})
	}
}

// GetUserConnections lists everyone the authenticated user is connected with
func GetUserConnections(connections *services.ConnectionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accepted, err := connections.ListAccepted(c.Context(), middleware.CurrentUser(c))
		if err != nil {
			return respondError(c, "list connections", err)
		}
		if len(accepted) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("No accepted connections found"))
		}
		return c.JSON(fiber.Map{
			"message": "Connections fetched successfully",
			"data":    accepted,
		})
	}
}

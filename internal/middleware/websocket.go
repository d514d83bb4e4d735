package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that the game and client ids are present before allowing the upgrade.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if c.Params("gameId") == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is required",
			})
		}

		// set by EnsureClientID
		if id, ok := c.Locals("clientID").(string); !ok || id == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required",
			})
		}

		return c.Next()
	}
}

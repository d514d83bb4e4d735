package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const ClientIDHeader = "X-Client-ID"

// EnsureClientID resolves the caller's identity from the X-Client-ID header
// or the clientId query parameter, minting one when neither is present. The
// id is echoed back so the client can reuse it.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("clientID").(string); ok && id != "" {
			return c.Next()
		}

		clientID := c.Get(ClientIDHeader)
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.NewString()
		}

		c.Locals("clientID", clientID)
		c.Set(ClientIDHeader, clientID)
		return c.Next()
	}
}

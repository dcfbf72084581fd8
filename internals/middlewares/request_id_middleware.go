package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

// RequestID tags the request and bounds its user context by timeout.
func RequestID(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("request_id", id)
		if timeout > 0 {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

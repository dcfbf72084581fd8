package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "copo_backend/internals/helpers"
)

func limitBy(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for every endpoint
func GlobalRateLimiter() fiber.Handler {
	return limitBy(300, time.Minute, "Too many requests. Please try again later.")
}

func LoginRateLimiter() fiber.Handler {
	return limitBy(10, time.Minute, "Too many login attempts. Please wait a moment.")
}

// Heavy endpoints: LaTeX render and LLM generation
func HeavyRateLimiter() fiber.Handler {
	return limitBy(10, time.Minute, "Too many render or generation requests. Please wait a moment.")
}

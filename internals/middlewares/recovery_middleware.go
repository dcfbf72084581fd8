package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"copo_backend/internals/observability"
)

// RecoveryMiddleware turns a panic into a 500 and reports it.
func RecoveryMiddleware(log *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error("panic recovered",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("panic", e),
				zap.Stack("stack"))
			observability.CaptureErr(fmt.Errorf("panic: %v", e))
		},
	})
}

package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"copo_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide chain; order matters.
func SetupMiddlewares(app *fiber.App, log *zap.Logger, corsOrigins []string, requestTimeout time.Duration) {
	app.Use(RequestID(requestTimeout))
	app.Use(logger.LoggerMiddleware(log))
	app.Use(RecoveryMiddleware(log))
	app.Use(CorsMiddleware(corsOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter())
}

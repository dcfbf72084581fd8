package logger

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"copo_backend/internals/observability"
)

// LoggerMiddleware writes one structured line per request and records HTTP metrics.
func LoggerMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the app error handler set the status before it is read
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		observability.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		observability.HTTPDuration.WithLabelValues(c.Method(), route).Observe(latency.Seconds())

		fields := []zap.Field{
			zap.String("request_id", requestID(c)),
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("request_id").(string); ok {
		return v
	}
	return c.Get(fiber.HeaderXRequestID)
}

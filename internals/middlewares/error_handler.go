package middlewares

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	helper "copo_backend/internals/helpers"
	"copo_backend/internals/observability"
)

// ErrorHandler renders errors that escaped a handler in the standard envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			observability.CaptureErr(err)
		}
		return helper.JsonError(c, code, err.Error())
	}
}

package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "copo_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError lets the request through only for allowedRoles.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helper.LocUserRole).(string)
		if !ok || role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		if customForbiddenMessage == "" {
			customForbiddenMessage = "You do not have permission to perform this action."
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	LocRawToken  = "raw_token"
	LocUserID    = "user_id"
	LocUserRole  = "userRole"
	LocUserName  = "user_name"
	LocFacultyID = "faculty_id"
)

// GetRawAccessToken returns the token stored by the auth middleware,
// falling back to the Authorization header.
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

// GetUserIDFromToken returns 401 when the request is not authenticated.
func GetUserIDFromToken(c *fiber.Ctx) (uint, error) {
	if v, ok := c.Locals(LocUserID).(uint); ok && v > 0 {
		return v, nil
	}
	return 0, fiber.NewError(fiber.StatusUnauthorized, "Authentication required.")
}

func GetRoleFromToken(c *fiber.Ctx) string {
	v, _ := c.Locals(LocUserRole).(string)
	return v
}

// GetFacultyIDFromToken is nil for accounts without a faculty row (admins).
func GetFacultyIDFromToken(c *fiber.Ctx) *uint {
	if v, ok := c.Locals(LocFacultyID).(uint); ok && v > 0 {
		return &v
	}
	return nil
}

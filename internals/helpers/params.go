package helper

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ParseID reads a positive integer path parameter.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name+".")
	}
	return uint(n), nil
}

// QueryUint returns nil when the query param is absent.
func QueryUint(c *fiber.Ctx, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, NewFieldError(name, "Must be a positive integer.")
	}
	v := uint(n)
	return &v, nil
}

func TrimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// ReqCtx is the request's user context, never nil.
func ReqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}

// ParseBody decodes the request body or returns a 400.
func ParseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the configured frontends, or any origin when none are set.
func CorsMiddleware(origins []string) fiber.Handler {
	allow := "*"
	credentials := false
	if len(origins) > 0 {
		allow = strings.Join(origins, ", ")
		credentials = true
	}
	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, Content-Disposition",
		AllowCredentials: credentials,
	})
}

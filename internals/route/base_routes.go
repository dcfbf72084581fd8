package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"gorm.io/gorm"

	database "copo_backend/internals/databases"
	"copo_backend/internals/observability"
)

func BaseRoutes(app *fiber.App, db *gorm.DB, env string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("COPO backend is running")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(c.UserContext(), db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    env,
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(observability.Handler()))
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/dashboard/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewDashboardController(db)
	r.Get("/dashboard-stats",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("dashboard stats"), constants.RoleAdmin),
		ctl.Get)
}

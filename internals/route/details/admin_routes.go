package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dashboardRoute "copo_backend/internals/features/dashboard/route"
	userRoute "copo_backend/internals/features/users/users/route"
)

func AdminRoutes(api fiber.Router, db *gorm.DB, log *zap.Logger) {
	log.Debug("admin routes: dashboard, users")
	dashboardRoute.DashboardRoutes(api, db)
	userRoute.UserRoutes(api, db)
}

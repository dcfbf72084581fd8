package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/imports/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

// ImportRoutes mounts the admin-only upload endpoints next to their entities.
func ImportRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctl := controller.NewImportController(db, log)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("bulk import"), constants.RoleAdmin)

	r.Post("/students/upload", adminOnly, ctl.Students)
	r.Post("/courses/upload", adminOnly, ctl.Courses)
	r.Post("/faculty/upload", adminOnly, ctl.Faculty)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/people/faculty/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

// FacultyRoutes mounts /faculty. /faculty/upload is registered by the imports.
func FacultyRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctl := controller.NewFacultyController(db, log)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("faculty"), constants.RoleAdmin)

	g := r.Group("/faculty")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}

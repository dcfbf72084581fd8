package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/academics/programmes/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

// ProgrammeRoutes mounts /programmes. The /:id/students and /:id/psos
// listings are registered by the students and psos features.
func ProgrammeRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewProgrammeController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("programmes"), constants.RoleAdmin)

	g := r.Group("/programmes")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/people/students/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

// StudentRoutes mounts /students and /programmes/:id/students.
// /students/upload is registered by the imports.
func StudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewStudentController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("students"), constants.RoleAdmin)

	g := r.Group("/students")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)

	r.Get("/programmes/:id/students", ctl.ListByProgramme)
}

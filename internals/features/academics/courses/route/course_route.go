package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/academics/courses/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

// CourseRoutes mounts /courses. /courses/:id/cos lives with the CO feature
// and /courses/upload with the imports.
func CourseRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourseController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("courses"), constants.RoleAdmin)

	g := r.Group("/courses")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}

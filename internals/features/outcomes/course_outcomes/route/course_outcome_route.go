package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/outcomes/course_outcomes/controller"
)

// CourseOutcomeRoutes mounts /cos and /courses/:id/cos. Teachers may write COs.
func CourseOutcomeRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourseOutcomeController(db)

	g := r.Group("/cos")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)

	r.Get("/courses/:id/cos", ctl.ListByCourse)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/exams/assessments/controller"
)

// AssessmentRoutes mounts /exams/:kind for external, viva, quiz and assignment.
func AssessmentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAssessmentController(db)

	g := r.Group("/exams/:kind")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}

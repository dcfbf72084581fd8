package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/exams/internal_exams/controller"
)

// InternalExamRoutes mounts /internal-exams and /exam-sections.
// /internal-exams/:id/preview is registered by the preview feature.
func InternalExamRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewInternalExamController(db)

	g := r.Group("/internal-exams")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Get("/:id/details", ctl.Details)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
	g.Get("/:id/sections", ctl.ListSections)
	g.Post("/:id/sections", ctl.CreateSection)

	s := r.Group("/exam-sections")
	s.Put("/:id", ctl.UpdateSection)
	s.Delete("/:id", ctl.DeleteSection)
	s.Get("/:id/questions", ctl.ListQuestions)
	s.Put("/:id/questions", ctl.SyncQuestions)
	s.Post("/:id/questions", ctl.AddQuestions)
}

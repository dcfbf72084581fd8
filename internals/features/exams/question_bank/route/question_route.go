package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/exams/question_bank/controller"
)

func QuestionRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewQuestionController(db)

	g := r.Group("/questions")
	g.Get("/", ctl.List)
	g.Get("/by-marks", ctl.ByMarks)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}

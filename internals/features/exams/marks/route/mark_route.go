package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/exams/marks/controller"
)

// MarkRoutes mounts /marks/:kind for external, viva, quiz, assignment and internal.
func MarkRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewMarkController(db)

	g := r.Group("/marks/:kind")
	g.Get("/", ctl.List)
	g.Get("/export", ctl.Export)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Post("/bulk", ctl.Bulk)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}

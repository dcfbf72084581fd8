package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/academics/batches/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

func BatchRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewBatchController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("batches"), constants.RoleAdmin)

	g := r.Group("/batches")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)

	r.Get("/faculty-batches", ctl.FacultyBatches)
	r.Get("/faculty-batches/exams", ctl.FacultyBatchExams)
}

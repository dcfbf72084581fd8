package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/outcomes/program_outcomes/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

func ProgramOutcomeRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewProgramOutcomeController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("program outcomes"), constants.RoleAdmin)

	g := r.Group("/pos")
	g.Get("/", ctl.List)
	g.Get("/by-level/:level_id", ctl.ListByLevel)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/outcomes/program_specific_outcomes/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

func PSORoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewPSOController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("program specific outcomes"), constants.RoleAdmin)

	g := r.Group("/psos")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)

	r.Get("/programmes/:id/psos", ctl.ListByProgramme)
}

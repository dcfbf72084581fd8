package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/academics/levels/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

func LevelRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewLevelController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("levels"), constants.RoleAdmin)

	g := r.Group("/levels")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}

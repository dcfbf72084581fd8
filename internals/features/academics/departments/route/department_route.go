package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/academics/departments/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

func DepartmentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewDepartmentController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("departments"), constants.RoleAdmin)

	g := r.Group("/departments")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.Delete)
}

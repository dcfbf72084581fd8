package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/users/users/controller"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

// UserRoutes mounts the admin account management under /users.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminUserController(db)

	g := r.Group("/users", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user accounts"), constants.RoleAdmin))
	g.Get("/", ctl.ListUsers)
	g.Get("/:id", ctl.GetUser)
	g.Put("/:id", ctl.UpdateUser)
	g.Delete("/:id", ctl.DeleteUser)
}

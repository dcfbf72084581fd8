package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "copo_backend/internals/features/users/auth/route"
)

type AuthOpts = authRoute.AuthRouteOpts

func AuthRoutes(app fiber.Router, db *gorm.DB, protected fiber.Handler, o AuthOpts) {
	authRoute.AuthRoutes(app, db, protected, o)
}

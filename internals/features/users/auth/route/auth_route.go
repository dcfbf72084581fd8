package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	authController "copo_backend/internals/features/users/auth/controller"
	authService "copo_backend/internals/features/users/auth/service"
	rateLimiter "copo_backend/internals/middlewares"
	authMiddleware "copo_backend/internals/middlewares/auth"
)

type AuthRouteOpts struct {
	Tokens         authService.TokenIssuer
	Google         authService.GoogleVerifier
	GoogleClientID string
	Log            *zap.Logger
}

// AuthRoutes mounts /api/auth. protected is the JWT middleware.
func AuthRoutes(app fiber.Router, db *gorm.DB, protected fiber.Handler, o AuthRouteOpts) {
	ctl := authController.NewAuthController(db, o.Tokens, o.Google, o.GoogleClientID, o.Log)
	adminOnly := authMiddleware.OnlyRoles(constants.RoleErrorAdmin("register users"), constants.RoleAdmin)

	pub := app.Group("/api/auth")
	pub.Post("/token", rateLimiter.LoginRateLimiter(), ctl.Login)
	pub.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	pub.Post("/token/refresh", ctl.Refresh)
	pub.Post("/login-google", rateLimiter.LoginRateLimiter(), ctl.LoginGoogle)

	pub.Post("/logout", protected, ctl.Logout)
	pub.Post("/reset-credentials", protected, ctl.ResetCredentials)
	pub.Get("/user-profile", protected, ctl.Me)
	pub.Post("/register", protected, adminOnly, ctl.Register)
}

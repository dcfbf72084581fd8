package routes

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	middlewares "copo_backend/internals/middlewares"
)

type AppOpts struct {
	BodyLimitMB    int
	CorsOrigins    []string
	RequestTimeout time.Duration
}

// NewApp builds the fiber app with the middleware chain and every route mounted.
func NewApp(d Deps, o AppOpts) *fiber.App {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if o.BodyLimitMB <= 0 {
		o.BodyLimitMB = 20
	}
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             o.BodyLimitMB * 1024 * 1024,
		ErrorHandler:          middlewares.ErrorHandler(d.Log),
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})
	middlewares.SetupMiddlewares(app, d.Log, o.CorsOrigins, o.RequestTimeout)
	SetupRoutes(app, d)
	return app
}

package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	previewService "copo_backend/internals/features/exams/exam_preview/service"
	generationService "copo_backend/internals/features/exams/question_generation/service"
	authService "copo_backend/internals/features/users/auth/service"
	authMiddleware "copo_backend/internals/middlewares/auth"
	routeDetails "copo_backend/internals/route/details"
)

var startTime time.Time

// Deps is everything the handlers need, built once in main.
type Deps struct {
	DB             *gorm.DB
	Log            *zap.Logger
	Env            string
	Tokens         authService.TokenIssuer
	Google         authService.GoogleVerifier
	GoogleClientID string
	Renderer       previewService.Renderer
	Generator      generationService.QuestionGenerator
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	BaseRoutes(app, d.DB, d.Env)

	protected := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		DB:     d.DB,
		Tokens: d.Tokens,
		Log:    d.Log,
	})

	// ===================== AUTH (mounted before the guarded /api group) =====================
	d.Log.Info("setting up auth routes")
	routeDetails.AuthRoutes(app, d.DB, protected, routeDetails.AuthOpts{
		Tokens:         d.Tokens,
		Google:         d.Google,
		GoogleClientID: d.GoogleClientID,
		Log:            d.Log,
	})

	// ===================== PRIVATE =====================
	api := app.Group("/api", protected)

	d.Log.Info("mounting academics routes")
	routeDetails.AcademicsRoutes(api, d.DB)

	d.Log.Info("mounting people routes")
	routeDetails.PeopleRoutes(api, d.DB, d.Log)

	d.Log.Info("mounting outcomes routes")
	routeDetails.OutcomesRoutes(api, d.DB)

	d.Log.Info("mounting exams routes")
	routeDetails.ExamsRoutes(api, d.DB, routeDetails.ExamsOpts{
		Renderer:  d.Renderer,
		Generator: d.Generator,
		Log:       d.Log,
	})

	d.Log.Info("mounting admin routes")
	routeDetails.AdminRoutes(api, d.DB, d.Log)
}

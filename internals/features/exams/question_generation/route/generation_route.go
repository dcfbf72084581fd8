package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/features/exams/question_generation/controller"
	"copo_backend/internals/features/exams/question_generation/service"
	"copo_backend/internals/middlewares"
)

func GenerationRoutes(r fiber.Router, db *gorm.DB, g service.QuestionGenerator, log *zap.Logger) {
	ctl := controller.NewGenerationController(db, g, log)
	r.Post("/upload-pdf", middlewares.HeavyRateLimiter(), ctl.UploadPDF)
}

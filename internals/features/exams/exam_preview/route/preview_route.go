package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/features/exams/exam_preview/controller"
	"copo_backend/internals/features/exams/exam_preview/service"
	"copo_backend/internals/middlewares"
)

func PreviewRoutes(r fiber.Router, db *gorm.DB, renderer service.Renderer, log *zap.Logger) {
	ctl := controller.NewPreviewController(db, renderer, log)
	heavy := middlewares.HeavyRateLimiter()

	r.Post("/exam-preview", heavy, ctl.Preview)
	r.Get("/internal-exams/:id/preview", heavy, ctl.ExamPreview)
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/features/exams/exam_preview/dto"
	"copo_backend/internals/features/exams/exam_preview/service"
	examService "copo_backend/internals/features/exams/internal_exams/service"
	helper "copo_backend/internals/helpers"
)

type PreviewController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Renderer service.Renderer
	Log      *zap.Logger
}

func NewPreviewController(db *gorm.DB, r service.Renderer, log *zap.Logger) *PreviewController {
	return &PreviewController{DB: db, Validate: helper.NewValidator(), Renderer: r, Log: log}
}

func (h *PreviewController) render(c *fiber.Ctx, in service.PaperInput) error {
	img, err := h.Renderer.Render(helper.ReqCtx(c), in)
	if err != nil {
		h.Log.Error("render preview", zap.String("exam", in.ExamName), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.PreviewResponse{Image: img.Base64(), MimeType: img.MimeType})
}

// POST /api/exam-preview?format=png|webp
func (h *PreviewController) Preview(c *fiber.Ctx) error {
	var req dto.PreviewRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	return h.render(c, req.ToPaper(c.Query("format")))
}

// GET /api/internal-exams/:id/preview?format=png|webp
func (h *PreviewController) ExamPreview(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	d, err := examService.Details(h.DB.WithContext(helper.ReqCtx(c)), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	in := service.FromExamDetails(d)
	in.Format = c.Query("format")
	return h.render(c, in)
}

package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	assessmentRoute "copo_backend/internals/features/exams/assessments/route"
	previewRoute "copo_backend/internals/features/exams/exam_preview/route"
	previewService "copo_backend/internals/features/exams/exam_preview/service"
	internalExamRoute "copo_backend/internals/features/exams/internal_exams/route"
	markRoute "copo_backend/internals/features/exams/marks/route"
	questionRoute "copo_backend/internals/features/exams/question_bank/route"
	generationRoute "copo_backend/internals/features/exams/question_generation/route"
	generationService "copo_backend/internals/features/exams/question_generation/service"
)

type ExamsOpts struct {
	Renderer  previewService.Renderer
	Generator generationService.QuestionGenerator
	Log       *zap.Logger
}

func ExamsRoutes(api fiber.Router, db *gorm.DB, o ExamsOpts) {
	assessmentRoute.AssessmentRoutes(api, db)
	// preview first so /internal-exams/:id/preview is not shadowed
	previewRoute.PreviewRoutes(api, db, o.Renderer, o.Log)
	internalExamRoute.InternalExamRoutes(api, db)
	questionRoute.QuestionRoutes(api, db)
	markRoute.MarkRoutes(api, db)
	generationRoute.GenerationRoutes(api, db, o.Generator, o.Log)
}

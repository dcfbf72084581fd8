package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	questionModel "copo_backend/internals/features/exams/question_bank/model"
	"copo_backend/internals/features/exams/question_generation/dto"
	"copo_backend/internals/features/exams/question_generation/service"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type GenerationController struct {
	DB        *gorm.DB
	Generator service.QuestionGenerator
	Log       *zap.Logger
}

func NewGenerationController(db *gorm.DB, g service.QuestionGenerator, log *zap.Logger) *GenerationController {
	return &GenerationController{DB: db, Generator: g, Log: log}
}

func (h *GenerationController) save(tx *gorm.DB, form dto.GenerateForm, qs []service.GeneratedQuestion) (int, error) {
	courseID, err := references.Course(tx, references.Ref{ID: form.CourseID}, "course_id")
	if err != nil {
		return 0, err
	}
	coID, err := references.CourseOutcome(tx, references.Ref{ID: form.COID}, "co_id")
	if err != nil {
		return 0, err
	}
	rows := make([]questionModel.QuestionModel, 0, len(qs))
	for _, q := range qs {
		marks := q.Marks
		if form.Marks > 0 {
			marks = form.Marks
		}
		rows = append(rows, questionModel.QuestionModel{CourseID: courseID, COID: coID, Text: q.Text, Marks: marks})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// POST /api/upload-pdf (multipart: file, count, marks, course_id, co_id, save)
func (h *GenerationController) UploadPDF(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.FromError(c, helper.MissingField("file"))
	}
	if constants.DetectUploadKind(fh.Filename) != constants.UploadPDF {
		return helper.FromError(c, helper.NewFieldError("file", "Upload a .pdf file."))
	}
	form, err := dto.ParseGenerateForm(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Could not open upload: "+err.Error())
	}
	defer f.Close()
	text, err := service.ExtractText(f, fh.Size)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if text == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No text could be extracted from the PDF.")
	}

	qs, err := h.Generator.Generate(helper.ReqCtx(c), service.GenerateInput{Text: text, Count: form.Count, Marks: form.Marks})
	if err != nil {
		h.Log.Error("generate questions", zap.String("file", fh.Filename), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	saved := 0
	if form.Save {
		err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
			var err error
			saved, err = h.save(tx, form, qs)
			return err
		})
		if err != nil {
			return helper.FromError(c, err)
		}
	}
	return helper.JsonOK(c, "ok", fiber.Map{"questions": qs, "saved": saved})
}

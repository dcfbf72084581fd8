package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/exams/internal_exams/dto"
	"copo_backend/internals/features/exams/internal_exams/model"
	"copo_backend/internals/features/exams/internal_exams/service"
	helper "copo_backend/internals/helpers"
)

/* =========================================================
   SECTIONS
   ========================================================= */

// GET /api/internal-exams/:id/sections
func (h *InternalExamController) ListSections(c *fiber.Ctx) error {
	examID, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	db := h.DB.WithContext(helper.ReqCtx(c))
	var exam model.InternalExamModel
	if err := db.Select("id").First(&exam, examID).Error; err != nil {
		return helper.FromError(c, err)
	}
	var rows []model.ExamSectionModel
	if err := db.Where("internal_exam_id = ?", examID).Order("id ASC").Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromExamSectionModels(rows), len(rows))
}

// POST /api/internal-exams/:id/sections
func (h *InternalExamController) CreateSection(c *fiber.Ctx) error {
	examID, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateExamSectionRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var m model.ExamSectionModel
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var exam model.InternalExamModel
		if err := tx.Select("id").First(&exam, examID).Error; err != nil {
			return err
		}
		if m, err = req.ToModel(examID); err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Section created", dto.FromExamSectionModel(m))
}

// PUT /api/exam-sections/:id
func (h *InternalExamController) UpdateSection(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateExamSectionRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	var m model.ExamSectionModel
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Section updated", dto.FromExamSectionModel(m))
}

// DELETE /api/exam-sections/:id
func (h *InternalExamController) DeleteSection(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.ExamSection(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Section deleted", fiber.Map{"id": id})
}

/* =========================================================
   SECTION QUESTIONS
   ========================================================= */

// GET /api/exam-sections/:id/questions
func (h *InternalExamController) ListQuestions(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := service.ListQuestions(h.DB.WithContext(helper.ReqCtx(c)), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (h *InternalExamController) changeQuestions(c *fiber.Ctx, sync bool) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.QuestionIDsRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var res service.SyncResult
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var err error
		if sync {
			res, err = service.Sync(tx, id, req.IDs())
		} else {
			res, err = service.Add(tx, id, req.IDs())
		}
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := service.ListQuestions(h.DB.WithContext(helper.ReqCtx(c)), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Section questions updated", fiber.Map{
		"added":     res.Added,
		"removed":   res.Removed,
		"questions": rows,
	})
}

// PUT /api/exam-sections/:id/questions replaces the section's question set.
func (h *InternalExamController) SyncQuestions(c *fiber.Ctx) error {
	return h.changeQuestions(c, true)
}

// POST /api/exam-sections/:id/questions appends questions not yet placed.
func (h *InternalExamController) AddQuestions(c *fiber.Ctx) error {
	return h.changeQuestions(c, false)
}

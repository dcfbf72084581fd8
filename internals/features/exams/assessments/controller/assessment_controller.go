package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/exams/assessments/dto"
	"copo_backend/internals/features/exams/assessments/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

// AssessmentController serves external exams, vivas, quizzes and assignments
// under /exams/:kind.
type AssessmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAssessmentController(db *gorm.DB) *AssessmentController {
	return &AssessmentController{DB: db, Validate: helper.NewValidator()}
}

func kindOf(c *fiber.Ctx) (constants.ExamKind, error) {
	k, ok := constants.ExamKindByName(c.Params("kind"), constants.AssessmentKinds)
	if !ok {
		return k, fiber.NewError(fiber.StatusNotFound, "Unknown exam kind "+c.Params("kind")+".")
	}
	return k, nil
}

func baseQuery(db *gorm.DB, k constants.ExamKind) *gorm.DB {
	return db.Table(k.ExamTable + " AS e").
		Select(`e.id, e.batch_id, e.max_marks, c.code AS course_code, c.title AS course_title, b.year, b.part`).
		Joins("LEFT JOIN batches b ON b.id = e.batch_id").
		Joins("LEFT JOIN courses c ON c.id = b.course_id")
}

func load(db *gorm.DB, k constants.ExamKind, id uint) (dto.AssessmentResponse, error) {
	var out dto.AssessmentResponse
	res := baseQuery(db, k).Where("e.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	out.Kind = k.Name
	return out, nil
}

// GET /api/exams/:kind?batch_id=
func (h *AssessmentController) List(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)), k)
	bid, err := helper.QueryUint(c, "batch_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if bid != nil {
		q = q.Where("e.batch_id = ?", *bid)
	}
	rows := []dto.AssessmentResponse{}
	if err := q.Order("e.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	for i := range rows {
		rows[i].Kind = k.Name
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (h *AssessmentController) GetByID(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := load(h.DB.WithContext(helper.ReqCtx(c)), k, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

func (h *AssessmentController) Create(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateAssessmentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.AssessmentResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		bid, err := references.Batch(tx, req.BatchRef(), "batch")
		if err != nil {
			return err
		}
		m := req.ToModel(bid)
		if err := tx.Table(k.ExamTable).Create(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, k, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Exam created", out)
}

func (h *AssessmentController) Update(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateAssessmentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.AssessmentResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.AssessmentModel
		if err := tx.Table(k.ExamTable).Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		if req.BatchID.Present {
			if m.BatchID, err = references.Batch(tx, req.BatchID.Value, "batch"); err != nil {
				return err
			}
		}
		if err := tx.Table(k.ExamTable).Where("id = ?", m.ID).Updates(map[string]any{
			"batch_id":  m.BatchID,
			"max_marks": m.MaxMarks,
		}).Error; err != nil {
			return err
		}
		out, err = load(tx, k, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Exam updated", out)
}

// Delete drops the exam with its marks.
func (h *AssessmentController) Delete(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Assessment(tx, k, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Exam deleted", fiber.Map{"id": id, "kind": k.Name})
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/exams/question_bank/dto"
	"copo_backend/internals/features/exams/question_bank/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type QuestionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{DB: db, Validate: helper.NewValidator()}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("question_bank AS q").
		Select(`q.id, q.course_id, c.code AS course_code, q.co_id, co.label AS co_label, q.text, q.marks`).
		Joins("LEFT JOIN courses c ON c.id = q.course_id").
		Joins("LEFT JOIN course_outcomes co ON co.id = q.co_id")
}

func load(db *gorm.DB, id uint) (dto.QuestionResponse, error) {
	var out dto.QuestionResponse
	res := baseQuery(db).Where("q.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

func (h *QuestionController) list(c *fiber.Ctx, q *gorm.DB) error {
	rows := []dto.QuestionResponse{}
	if err := q.Order("q.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

// GET /api/questions?course_id=&co_id=
func (h *QuestionController) List(c *fiber.Ctx) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	for _, f := range []string{"course_id", "co_id"} {
		v, err := helper.QueryUint(c, f)
		if err != nil {
			return helper.FromError(c, err)
		}
		if v != nil {
			q = q.Where("q."+f+" = ?", *v)
		}
	}
	return h.list(c, q)
}

// GET /api/questions/by-marks?course_id=&marks=
func (h *QuestionController) ByMarks(c *fiber.Ctx) error {
	courseID, err := helper.QueryUint(c, "course_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if courseID == nil {
		return helper.FromError(c, helper.MissingField("course_id"))
	}
	marks, err := helper.QueryUint(c, "marks")
	if err != nil {
		return helper.FromError(c, err)
	}
	if marks == nil {
		return helper.FromError(c, helper.MissingField("marks"))
	}
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c))).
		Where("q.course_id = ? AND q.marks = ?", *courseID, *marks)
	return h.list(c, q)
}

func (h *QuestionController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := load(h.DB.WithContext(helper.ReqCtx(c)), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

func (h *QuestionController) Create(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.QuestionResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		courseID, err := references.Course(tx, req.CourseRef(), "course")
		if err != nil {
			return err
		}
		coID, err := references.CourseOutcome(tx, req.CORef(), "co")
		if err != nil {
			return err
		}
		m := req.ToModel(courseID, coID)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Question created", out)
}

func (h *QuestionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateQuestionRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.QuestionResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.QuestionModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		if ref, ok := references.FromPatch(req.CourseID, req.Course); ok {
			if m.CourseID, err = references.Course(tx, ref, "course"); err != nil {
				return err
			}
		}
		if ref, ok := references.FromPatch(req.COID, req.CO); ok {
			if m.COID, err = references.CourseOutcome(tx, ref, "co"); err != nil {
				return err
			}
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Question updated", out)
}

// Delete also removes the question from any exam section it was placed in.
func (h *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Question(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"id": id})
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/exams/internal_exams/dto"
	"copo_backend/internals/features/exams/internal_exams/model"
	"copo_backend/internals/features/exams/internal_exams/service"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type InternalExamController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewInternalExamController(db *gorm.DB) *InternalExamController {
	return &InternalExamController{DB: db, Validate: helper.NewValidator()}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("internal_exams AS e").
		Select(`e.id, e.batch_id, e.name, e.duration, e.max_marks, e.exam_date,
			b.course_id, c.code AS course_code, c.title AS course_title`).
		Joins("LEFT JOIN batches b ON b.id = e.batch_id").
		Joins("LEFT JOIN courses c ON c.id = b.course_id")
}

func load(db *gorm.DB, id uint) (dto.InternalExamResponse, error) {
	var out dto.InternalExamResponse
	res := baseQuery(db).Where("e.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

// GET /api/internal-exams?batch_id=
func (h *InternalExamController) List(c *fiber.Ctx) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	bid, err := helper.QueryUint(c, "batch_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if bid != nil {
		q = q.Where("e.batch_id = ?", *bid)
	}
	rows := []dto.InternalExamResponse{}
	if err := q.Order("e.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (h *InternalExamController) GetByID(c *fiber.Ctx) error {
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

// GET /api/internal-exams/:id/details
func (h *InternalExamController) Details(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := service.Details(h.DB.WithContext(helper.ReqCtx(c)), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

func (h *InternalExamController) Create(c *fiber.Ctx) error {
	var req dto.CreateInternalExamRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.InternalExamResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		bid, err := references.Batch(tx, req.BatchRef(), "batch")
		if err != nil {
			return err
		}
		m, err := req.ToModel(bid)
		if err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Internal exam created", out)
}

func (h *InternalExamController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateInternalExamRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.InternalExamResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.InternalExamModel
		if err := tx.First(&m, id).Error; err != nil {
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
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Internal exam updated", out)
}

// Delete drops sections, their question placements and the internal marks.
func (h *InternalExamController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.InternalExam(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Internal exam deleted", fiber.Map{"id": id})
}

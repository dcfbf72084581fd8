package controller

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/exams/marks/dto"
	"copo_backend/internals/features/exams/marks/model"
	"copo_backend/internals/features/exams/marks/service"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

// MarkController serves /marks/:kind for every exam kind, internal included.
type MarkController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewMarkController(db *gorm.DB) *MarkController {
	return &MarkController{DB: db, Validate: helper.NewValidator()}
}

func kindOf(c *fiber.Ctx) (constants.ExamKind, error) {
	k, ok := constants.ExamKindByName(c.Params("kind"), constants.AllExamKinds)
	if !ok {
		return k, fiber.NewError(fiber.StatusNotFound, "Unknown exam kind "+c.Params("kind")+".")
	}
	return k, nil
}

// save validates one mark against its exam and upserts it.
func save(tx *gorm.DB, k constants.ExamKind, req dto.CreateMarkRequest) (studentID uint, err error) {
	if studentID, err = references.Student(tx, req.StudentRef(), "student_id"); err != nil {
		return 0, err
	}
	ceiling, err := service.MaxMarks(tx, k, *req.ExamID)
	if err != nil {
		return 0, err
	}
	if err := service.CheckRange(*req.Marks, ceiling); err != nil {
		return 0, err
	}
	return studentID, service.Upsert(tx, k, studentID, *req.ExamID, *req.Marks)
}

// GET /api/marks/:kind?exam_id=&student_id=
func (h *MarkController) List(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	q := service.Query(h.DB.WithContext(helper.ReqCtx(c)), k)
	for _, f := range []string{"exam_id", "student_id"} {
		v, err := helper.QueryUint(c, f)
		if err != nil {
			return helper.FromError(c, err)
		}
		if v != nil {
			q = q.Where("m."+f+" = ?", *v)
		}
	}
	rows, err := service.Rows(q, k)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (h *MarkController) GetByID(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := service.Rows(service.Query(h.DB.WithContext(helper.ReqCtx(c)), k).Where("m.id = ?", id), k)
	if err != nil {
		return helper.FromError(c, err)
	}
	if len(rows) == 0 {
		return helper.FromError(c, gorm.ErrRecordNotFound)
	}
	return helper.JsonOK(c, "ok", rows[0])
}

// POST /api/marks/:kind records a mark, replacing any earlier one for the same student and exam.
func (h *MarkController) Create(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateMarkRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.MarkResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		sid, err := save(tx, k, req)
		if err != nil {
			return err
		}
		out, err = service.Load(tx, k, sid, *req.ExamID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Mark saved", out)
}

// POST /api/marks/:kind/bulk is all-or-nothing; the first bad row aborts with its index.
func (h *MarkController) Bulk(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.BulkMarkRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var rows []dto.MarkResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		for i := range req.Marks {
			if _, err := save(tx, k, req.Row(i)); err != nil {
				var fe *helper.FieldError
				if errors.As(err, &fe) {
					return helper.NewFieldError(fmt.Sprintf("marks[%d].%s", i, fe.Field), fe.Message)
				}
				return err
			}
		}
		var err error
		rows, err = service.Rows(service.Query(tx, k).Where("m.exam_id = ?", *req.ExamID), k)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, strconv.Itoa(len(req.Marks))+" marks saved", rows)
}

func (h *MarkController) Update(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateMarkRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.MarkResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.MarkModel
		if err := tx.Table(k.MarkTable).Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		if req.Marks.Present {
			if !req.Marks.Set() {
				return helper.MissingField("marks")
			}
			ceiling, err := service.MaxMarks(tx, k, m.ExamID)
			if err != nil {
				return err
			}
			if err := service.CheckRange(*req.Marks.Value, ceiling); err != nil {
				return err
			}
			if err := tx.Table(k.MarkTable).Where("id = ?", id).Update("marks", *req.Marks.Value).Error; err != nil {
				return err
			}
		}
		var err error
		out, err = service.Load(tx, k, m.StudentID, m.ExamID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Mark updated", out)
}

func (h *MarkController) Delete(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := h.DB.WithContext(helper.ReqCtx(c)).Exec("DELETE FROM "+k.MarkTable+" WHERE id = ?", id)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, gorm.ErrRecordNotFound)
	}
	return helper.JsonDeleted(c, "Mark deleted", fiber.Map{"id": id, "kind": k.Name})
}

// GET /api/marks/:kind/export?exam_id= streams an XLSX sheet.
func (h *MarkController) Export(c *fiber.Ctx) error {
	k, err := kindOf(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	examID, err := helper.QueryUint(c, "exam_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if examID == nil {
		return helper.FromError(c, helper.MissingField("exam_id"))
	}
	db := h.DB.WithContext(helper.ReqCtx(c))
	ceiling, err := service.MaxMarks(db, k, *examID)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := service.Rows(service.Query(db, k).Where("m.exam_id = ?", *examID), k)
	if err != nil {
		return helper.FromError(c, err)
	}
	buf, err := service.Workbook(rows, ceiling)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_marks_%d.xlsx"`, k.Name, *examID))
	return c.Send(buf.Bytes())
}

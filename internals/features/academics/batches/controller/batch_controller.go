package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/academics/batches/dto"
	"copo_backend/internals/features/academics/batches/model"
	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type BatchController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewBatchController(db *gorm.DB) *BatchController {
	return &BatchController{DB: db, Validate: helper.NewValidator()}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("batches AS b").
		Select(`b.id, b.course_id, c.code AS course_code, c.title AS course_title,
			b.faculty_id, f.name AS faculty_name, b.year, b.part, b.active`).
		Joins("LEFT JOIN courses c ON c.id = b.course_id").
		Joins("LEFT JOIN faculty f ON f.id = b.faculty_id")
}

func load(db *gorm.DB, id uint) (dto.BatchResponse, error) {
	var out dto.BatchResponse
	res := baseQuery(db).Where("b.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

// GET /api/batches?course_id=&faculty_id=
func (h *BatchController) List(c *fiber.Ctx) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	for param, col := range map[string]string{"course_id": "b.course_id", "faculty_id": "b.faculty_id"} {
		v, err := helper.QueryUint(c, param)
		if err != nil {
			return helper.FromError(c, err)
		}
		if v != nil {
			q = q.Where(col+" = ?", *v)
		}
	}
	rows := []dto.BatchResponse{}
	if err := q.Order("b.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (h *BatchController) GetByID(c *fiber.Ctx) error {
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

func (h *BatchController) Create(c *fiber.Ctx) error {
	var req dto.CreateBatchRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.BatchResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		facultyID, err := references.Faculty(tx, req.FacultyRef(), "faculty")
		if err != nil {
			return err
		}
		var courseID *uint
		if ref := req.CourseRef(); ref != nil {
			id, err := references.Course(tx, *ref, "course")
			if err != nil {
				return err
			}
			courseID = &id
		}
		m := req.ToModel(courseID, facultyID)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Batch created", out)
}

func (h *BatchController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateBatchRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.BatchResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.BatchModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		if ref, ok := references.FromPatch(req.CourseID, req.Course); ok {
			// an explicit null detaches the course
			if ref.Empty() {
				m.CourseID = nil
			} else {
				cid, err := references.Course(tx, ref, "course")
				if err != nil {
					return err
				}
				m.CourseID = &cid
			}
		}
		if ref, ok := references.FromPatch(req.FacultyID, req.Faculty); ok {
			if m.FacultyID, err = references.Faculty(tx, ref, "faculty"); err != nil {
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
	return helper.JsonUpdated(c, "Batch updated", out)
}

// Delete drops every exam of the batch with its marks.
func (h *BatchController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Batch(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Batch deleted", fiber.Map{"id": id})
}

/* =========================================================
   FACULTY VIEW
   ========================================================= */

func (h *BatchController) ownBatches(c *fiber.Ctx) ([]dto.BatchResponse, error) {
	fid := helper.GetFacultyIDFromToken(c)
	if fid == nil {
		return nil, fiber.NewError(fiber.StatusForbidden, "No faculty profile is linked to this account.")
	}
	rows := []dto.BatchResponse{}
	err := baseQuery(h.DB.WithContext(helper.ReqCtx(c))).
		Where("b.faculty_id = ?", *fid).
		Order("b.year DESC, b.id ASC").
		Scan(&rows).Error
	return rows, err
}

// GET /api/faculty-batches
func (h *BatchController) FacultyBatches(c *fiber.Ctx) error {
	rows, err := h.ownBatches(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

// GET /api/faculty-batches/exams
func (h *BatchController) FacultyBatchExams(c *fiber.Ctx) error {
	rows, err := h.ownBatches(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	out := make([]dto.BatchWithExams, 0, len(rows))
	if len(rows) == 0 {
		return helper.JsonList(c, "ok", out, 0)
	}

	ids := make([]uint, 0, len(rows))
	for _, b := range rows {
		ids = append(ids, b.ID)
	}
	var exams []dto.BatchExam
	if err := h.DB.WithContext(helper.ReqCtx(c)).Table("internal_exams").
		Select("id, batch_id, name, max_marks, duration, exam_date").
		Where("batch_id IN ?", ids).
		Order("id ASC").
		Scan(&exams).Error; err != nil {
		return helper.FromError(c, err)
	}
	byBatch := make(map[uint][]dto.BatchExam, len(rows))
	for _, e := range exams {
		byBatch[e.BatchID] = append(byBatch[e.BatchID], e)
	}
	for _, b := range rows {
		list := byBatch[b.ID]
		if list == nil {
			list = []dto.BatchExam{}
		}
		out = append(out, dto.BatchWithExams{BatchResponse: b, InternalExams: list})
	}
	return helper.JsonList(c, "ok", out, len(out))
}

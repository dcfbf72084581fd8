package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/people/students/dto"
	"copo_backend/internals/features/people/students/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: helper.NewValidator()}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("students AS s").
		Select(`s.id, s.register_no, s.name, s.programme_id, p.name AS programme_name,
			s.year_of_admission, s.phone, s.email`).
		Joins("LEFT JOIN programmes p ON p.id = s.programme_id")
}

func load(db *gorm.DB, id uint) (dto.StudentResponse, error) {
	var out dto.StudentResponse
	res := baseQuery(db).Where("s.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

func (h *StudentController) list(c *fiber.Ctx, programmeID *uint) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	if programmeID != nil {
		q = q.Where("s.programme_id = ?", *programmeID)
	}
	rows := []dto.StudentResponse{}
	if err := q.Order("s.register_no ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

// GET /api/students?programme_id=
func (h *StudentController) List(c *fiber.Ctx) error {
	pid, err := helper.QueryUint(c, "programme_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return h.list(c, pid)
}

// GET /api/programmes/:id/students
func (h *StudentController) ListByProgramme(c *fiber.Ctx) error {
	pid, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	ok, err := references.Exists(h.DB.WithContext(helper.ReqCtx(c)), "programmes", pid)
	if err != nil {
		return helper.FromError(c, err)
	}
	if !ok {
		return helper.FromError(c, helper.NotFound("Programme"))
	}
	return h.list(c, &pid)
}

func (h *StudentController) GetByID(c *fiber.Ctx) error {
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

func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.StudentResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		progID, err := references.Programme(tx, req.ProgrammeRef(), "programme")
		if err != nil {
			return err
		}
		if err := references.UniqueFold(tx, &model.StudentModel{}, "register_no", req.RegisterNo, 0, "student", "register_no"); err != nil {
			return err
		}
		m, err := req.ToModel(progID)
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
	return helper.JsonCreated(c, "Student created", out)
}

func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateStudentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.StudentResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.StudentModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		if ref, ok := references.FromPatch(req.ProgrammeID, req.Programme); ok {
			if m.ProgrammeID, err = references.Programme(tx, ref, "programme"); err != nil {
				return err
			}
		}
		if err := references.UniqueFold(tx, &model.StudentModel{}, "register_no", m.RegisterNo, m.ID, "student", "register_no"); err != nil {
			return err
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
	return helper.JsonUpdated(c, "Student updated", out)
}

// Delete drops the student and all of its marks.
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Student(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"id": id})
}

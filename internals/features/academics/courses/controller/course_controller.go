package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/academics/courses/dto"
	"copo_backend/internals/features/academics/courses/model"
	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CourseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db, Validate: helper.NewValidator()}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("courses AS c").
		Select(`c.id, c.code, c.title, c.department_id, d.name AS department_name,
			c.programme_id, p.name AS programme_name, c.semester, c.credits, c.outcome_count, c.syllabus_year`).
		Joins("LEFT JOIN departments d ON d.id = c.department_id").
		Joins("LEFT JOIN programmes p ON p.id = c.programme_id")
}

func load(db *gorm.DB, id uint) (dto.CourseResponse, error) {
	var out dto.CourseResponse
	res := baseQuery(db).Where("c.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

// GET /api/courses?department_id=&programme_id=
func (h *CourseController) List(c *fiber.Ctx) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	for param, col := range map[string]string{"department_id": "c.department_id", "programme_id": "c.programme_id"} {
		v, err := helper.QueryUint(c, param)
		if err != nil {
			return helper.FromError(c, err)
		}
		if v != nil {
			q = q.Where(col+" = ?", *v)
		}
	}
	rows := []dto.CourseResponse{}
	if err := q.Order("c.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (h *CourseController) GetByID(c *fiber.Ctx) error {
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

func (h *CourseController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.CourseResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		deptID, err := references.Department(tx, req.DepartmentRef(), "department")
		if err != nil {
			return err
		}
		progID, err := references.Programme(tx, req.ProgrammeRef(), "programme")
		if err != nil {
			return err
		}
		if err := references.Unique(tx, &model.CourseModel{}, "code", req.Code, 0, "course", "code"); err != nil {
			return err
		}
		m := req.ToModel(deptID, progID)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Course created", out)
}

func (h *CourseController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateCourseRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.CourseResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.CourseModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		if ref, ok := references.FromPatch(req.DepartmentID, req.Department); ok {
			if m.DepartmentID, err = references.Department(tx, ref, "department"); err != nil {
				return err
			}
		}
		if ref, ok := references.FromPatch(req.ProgrammeID, req.Programme); ok {
			if m.ProgrammeID, err = references.Programme(tx, ref, "programme"); err != nil {
				return err
			}
		}
		if err := references.Unique(tx, &model.CourseModel{}, "code", m.Code, m.ID, "course", "code"); err != nil {
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
	return helper.JsonUpdated(c, "Course updated", out)
}

// Delete drops the course with its COs, question bank and batches.
func (h *CourseController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Course(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Course deleted", fiber.Map{"id": id})
}

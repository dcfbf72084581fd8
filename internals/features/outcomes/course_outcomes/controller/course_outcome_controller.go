package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseModel "copo_backend/internals/features/academics/courses/model"
	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/outcomes/course_outcomes/dto"
	"copo_backend/internals/features/outcomes/course_outcomes/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CourseOutcomeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseOutcomeController(db *gorm.DB) *CourseOutcomeController {
	return &CourseOutcomeController{DB: db, Validate: helper.NewValidator()}
}

// courseCodes maps course id to code for the given outcomes.
func courseCodes(db *gorm.DB, rows []model.CourseOutcomeModel) (map[uint]string, error) {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		if r.CourseID != nil {
			ids = append(ids, *r.CourseID)
		}
	}
	out := map[uint]string{}
	if len(ids) == 0 {
		return out, nil
	}
	var courses []courseModel.CourseModel
	if err := db.Select("id", "code").Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}
	for _, c := range courses {
		out[c.ID] = c.Code
	}
	return out, nil
}

func respond(db *gorm.DB, rows []model.CourseOutcomeModel) ([]dto.CourseOutcomeResponse, error) {
	codes, err := courseCodes(db, rows)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CourseOutcomeResponse, 0, len(rows))
	for _, r := range rows {
		var code *string
		if r.CourseID != nil {
			if c, ok := codes[*r.CourseID]; ok {
				code = &c
			}
		}
		out = append(out, dto.FromCourseOutcomeModel(r, code))
	}
	return out, nil
}

func respondOne(db *gorm.DB, m model.CourseOutcomeModel) (dto.CourseOutcomeResponse, error) {
	out, err := respond(db, []model.CourseOutcomeModel{m})
	if err != nil {
		return dto.CourseOutcomeResponse{}, err
	}
	return out[0], nil
}

func (h *CourseOutcomeController) list(c *fiber.Ctx, courseID *uint) error {
	db := h.DB.WithContext(helper.ReqCtx(c))
	q := db.Model(&model.CourseOutcomeModel{})
	if courseID != nil {
		q = q.Where("course_id = ?", *courseID)
	}
	var rows []model.CourseOutcomeModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	out, err := respond(db, rows)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", out, len(out))
}

// GET /api/cos?course_id=
func (h *CourseOutcomeController) List(c *fiber.Ctx) error {
	cid, err := helper.QueryUint(c, "course_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return h.list(c, cid)
}

// GET /api/courses/:id/cos
func (h *CourseOutcomeController) ListByCourse(c *fiber.Ctx) error {
	cid, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	ok, err := references.Exists(h.DB.WithContext(helper.ReqCtx(c)), "courses", cid)
	if err != nil {
		return helper.FromError(c, err)
	}
	if !ok {
		return helper.FromError(c, helper.NotFound("Course"))
	}
	return h.list(c, &cid)
}

func (h *CourseOutcomeController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	db := h.DB.WithContext(helper.ReqCtx(c))
	var m model.CourseOutcomeModel
	if err := db.First(&m, id).Error; err != nil {
		return helper.FromError(c, err)
	}
	out, err := respondOne(db, m)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

func (h *CourseOutcomeController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseOutcomeRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.CourseOutcomeResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var courseID *uint
		if ref := req.CourseRef(); ref != nil {
			id, err := references.Course(tx, *ref, "course")
			if err != nil {
				return err
			}
			courseID = &id
		}
		m, err := req.ToModel(courseID)
		if err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out, err = respondOne(tx, m)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Course outcome created", out)
}

func (h *CourseOutcomeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateCourseOutcomeRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.CourseOutcomeResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.CourseOutcomeModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.ApplyTo(&m); err != nil {
			return err
		}
		if ref, ok := references.FromPatch(req.CourseID, req.Course); ok {
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
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out, err = respondOne(tx, m)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Course outcome updated", out)
}

// Delete drops the CO and the questions written against it.
func (h *CourseOutcomeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.CourseOutcome(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Course outcome deleted", fiber.Map{"id": id})
}

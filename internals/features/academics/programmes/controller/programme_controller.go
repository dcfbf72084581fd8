package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/academics/programmes/dto"
	"copo_backend/internals/features/academics/programmes/model"
	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type ProgrammeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewProgrammeController(db *gorm.DB) *ProgrammeController {
	return &ProgrammeController{DB: db, Validate: helper.NewValidator()}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("programmes AS p").
		Select("p.id, p.name, p.department_id, d.name AS department_name, p.level_id, l.name AS level_name, p.outcome_count, p.duration").
		Joins("LEFT JOIN departments d ON d.id = p.department_id").
		Joins("LEFT JOIN levels l ON l.id = p.level_id")
}

func (h *ProgrammeController) load(db *gorm.DB, id uint) (dto.ProgrammeResponse, error) {
	var out dto.ProgrammeResponse
	res := baseQuery(db).Where("p.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

// GET /api/programmes?department_id=&level_id=
func (h *ProgrammeController) List(c *fiber.Ctx) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	deptID, err := helper.QueryUint(c, "department_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if deptID != nil {
		q = q.Where("p.department_id = ?", *deptID)
	}
	levelID, err := helper.QueryUint(c, "level_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if levelID != nil {
		q = q.Where("p.level_id = ?", *levelID)
	}

	rows := []dto.ProgrammeResponse{}
	if err := q.Order("p.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (h *ProgrammeController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := h.load(h.DB.WithContext(helper.ReqCtx(c)), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

func (h *ProgrammeController) Create(c *fiber.Ctx) error {
	var req dto.CreateProgrammeRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.ProgrammeResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		deptID, err := references.Department(tx, req.DepartmentRef(), "department")
		if err != nil {
			return err
		}
		levelID, err := references.Level(tx, req.LevelRef(), "level")
		if err != nil {
			return err
		}
		if err := references.Unique(tx, &model.ProgrammeModel{}, "name", req.Name, 0, "programme", "name"); err != nil {
			return err
		}
		m := req.ToModel(deptID, levelID)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out, err = h.load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Programme created", out)
}

func (h *ProgrammeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateProgrammeRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.ProgrammeResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.ProgrammeModel
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
		if ref, ok := references.FromPatch(req.LevelID, req.Level); ok {
			if m.LevelID, err = references.Level(tx, ref, "level"); err != nil {
				return err
			}
		}
		if err := references.Unique(tx, &model.ProgrammeModel{}, "name", m.Name, m.ID, "programme", "name"); err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out, err = h.load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Programme updated", out)
}

// Delete drops courses, students and PSOs of the programme too.
func (h *ProgrammeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Programme(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Programme deleted", fiber.Map{"id": id})
}

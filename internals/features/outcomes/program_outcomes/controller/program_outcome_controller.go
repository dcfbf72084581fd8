package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/outcomes/program_outcomes/dto"
	"copo_backend/internals/features/outcomes/program_outcomes/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type ProgramOutcomeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewProgramOutcomeController(db *gorm.DB) *ProgramOutcomeController {
	return &ProgramOutcomeController{DB: db, Validate: helper.NewValidator()}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("program_outcomes AS po").
		Select("po.id, po.label, po.description, po.level_id, l.name AS level_name").
		Joins("LEFT JOIN levels l ON l.id = po.level_id")
}

func load(db *gorm.DB, id uint) (dto.ProgramOutcomeResponse, error) {
	var out dto.ProgramOutcomeResponse
	res := baseQuery(db).Where("po.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

func (h *ProgramOutcomeController) list(c *fiber.Ctx, levelID *uint) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	if levelID != nil {
		q = q.Where("po.level_id = ?", *levelID)
	}
	rows := []dto.ProgramOutcomeResponse{}
	if err := q.Order("po.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

// GET /api/pos?level_id=
func (h *ProgramOutcomeController) List(c *fiber.Ctx) error {
	lid, err := helper.QueryUint(c, "level_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return h.list(c, lid)
}

// GET /api/pos/by-level/:level_id
func (h *ProgramOutcomeController) ListByLevel(c *fiber.Ctx) error {
	lid, err := helper.ParseID(c, "level_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return h.list(c, &lid)
}

func (h *ProgramOutcomeController) GetByID(c *fiber.Ctx) error {
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

func (h *ProgramOutcomeController) Create(c *fiber.Ctx) error {
	var req dto.CreateProgramOutcomeRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	var out dto.ProgramOutcomeResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		levelID, err := references.Level(tx, req.LevelRef(), "level")
		if err != nil {
			return err
		}
		m := req.ToModel(levelID)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Program outcome created", out)
}

func (h *ProgramOutcomeController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateProgramOutcomeRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	var out dto.ProgramOutcomeResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.ProgramOutcomeModel
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		if ref, ok := references.FromPatch(req.LevelID, req.Level); ok {
			if m.LevelID, err = references.Level(tx, ref, "level"); err != nil {
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
	return helper.JsonUpdated(c, "Program outcome updated", out)
}

func (h *ProgramOutcomeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := h.DB.WithContext(helper.ReqCtx(c)).Delete(&model.ProgramOutcomeModel{}, id)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, gorm.ErrRecordNotFound)
	}
	return helper.JsonDeleted(c, "Program outcome deleted", fiber.Map{"id": id})
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/outcomes/program_specific_outcomes/dto"
	"copo_backend/internals/features/outcomes/program_specific_outcomes/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type PSOController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPSOController(db *gorm.DB) *PSOController {
	return &PSOController{DB: db, Validate: helper.NewValidator()}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("program_specific_outcomes AS ps").
		Select("ps.id, ps.programme_id, p.name AS programme_name, ps.label, ps.description").
		Joins("LEFT JOIN programmes p ON p.id = ps.programme_id")
}

func load(db *gorm.DB, id uint) (dto.PSOResponse, error) {
	var out dto.PSOResponse
	res := baseQuery(db).Where("ps.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

// labelTaken enforces one label per programme.
func labelTaken(tx *gorm.DB, programmeID uint, label string, exceptID uint) error {
	var n int64
	q := tx.Model(&model.ProgramSpecificOutcomeModel{}).Where("programme_id = ? AND label = ?", programmeID, label)
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return helper.NewFieldError("label", "This programme already has a PSO with this label.")
	}
	return nil
}

func (h *PSOController) list(c *fiber.Ctx, programmeID *uint) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	if programmeID != nil {
		q = q.Where("ps.programme_id = ?", *programmeID)
	}
	rows := []dto.PSOResponse{}
	if err := q.Order("ps.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

// GET /api/psos?programme_id=
func (h *PSOController) List(c *fiber.Ctx) error {
	pid, err := helper.QueryUint(c, "programme_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	return h.list(c, pid)
}

// GET /api/programmes/:id/psos
func (h *PSOController) ListByProgramme(c *fiber.Ctx) error {
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

func (h *PSOController) GetByID(c *fiber.Ctx) error {
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

func (h *PSOController) Create(c *fiber.Ctx) error {
	var req dto.CreatePSORequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	var out dto.PSOResponse
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		pid, err := references.Programme(tx, req.ProgrammeRef(), "programme")
		if err != nil {
			return err
		}
		if err := labelTaken(tx, pid, req.Label, 0); err != nil {
			return err
		}
		m := req.ToModel(pid)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "PSO created", out)
}

func (h *PSOController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdatePSORequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	var out dto.PSOResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.ProgramSpecificOutcomeModel
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
		if err := labelTaken(tx, m.ProgrammeID, m.Label, m.ID); err != nil {
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
	return helper.JsonUpdated(c, "PSO updated", out)
}

func (h *PSOController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res := h.DB.WithContext(helper.ReqCtx(c)).Delete(&model.ProgramSpecificOutcomeModel{}, id)
	if res.Error != nil {
		return helper.FromError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.FromError(c, gorm.ErrRecordNotFound)
	}
	return helper.JsonDeleted(c, "PSO deleted", fiber.Map{"id": id})
}

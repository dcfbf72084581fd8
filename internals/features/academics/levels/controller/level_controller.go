package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/academics/levels/dto"
	"copo_backend/internals/features/academics/levels/model"
	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type LevelController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewLevelController(db *gorm.DB) *LevelController {
	return &LevelController{DB: db, Validate: helper.NewValidator()}
}

func (h *LevelController) List(c *fiber.Ctx) error {
	var rows []model.LevelModel
	if err := h.DB.WithContext(helper.ReqCtx(c)).Order("id ASC").Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromLevelModels(rows), len(rows))
}

func (h *LevelController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var m model.LevelModel
	if err := h.DB.WithContext(helper.ReqCtx(c)).First(&m, id).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromLevelModel(m))
}

func (h *LevelController) Create(c *fiber.Ctx) error {
	var req dto.CreateLevelRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	m := req.ToModel()
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		if err := references.Unique(tx, &model.LevelModel{}, "name", m.Name, 0, "level", "name"); err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Level created", dto.FromLevelModel(m))
}

func (h *LevelController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateLevelRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	var m model.LevelModel
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		if err := references.Unique(tx, &model.LevelModel{}, "name", m.Name, m.ID, "level", "name"); err != nil {
			return err
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Level updated", dto.FromLevelModel(m))
}

// Delete drops the level with its programmes and program outcomes.
func (h *LevelController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Level(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Level deleted", fiber.Map{"id": id})
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/features/academics/departments/dto"
	"copo_backend/internals/features/academics/departments/model"
	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type DepartmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db, Validate: helper.NewValidator()}
}

// GET /api/departments
func (h *DepartmentController) List(c *fiber.Ctx) error {
	var rows []model.DepartmentModel
	if err := h.DB.WithContext(helper.ReqCtx(c)).Order("id ASC").Find(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromDepartmentModels(rows), len(rows))
}

// GET /api/departments/:id
func (h *DepartmentController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var m model.DepartmentModel
	if err := h.DB.WithContext(helper.ReqCtx(c)).First(&m, id).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromDepartmentModel(m))
}

// POST /api/departments
func (h *DepartmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}

	m := req.ToModel()
	err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		if err := references.Unique(tx, &model.DepartmentModel{}, "name", m.Name, 0, "department", "name"); err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "Department created", dto.FromDepartmentModel(m))
}

// PUT /api/departments/:id
func (h *DepartmentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateDepartmentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var m model.DepartmentModel
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&m); err != nil {
			return err
		}
		if err := references.Unique(tx, &model.DepartmentModel{}, "name", m.Name, m.ID, "department", "name"); err != nil {
			return err
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Department updated", dto.FromDepartmentModel(m))
}

// DELETE /api/departments/:id removes programmes, courses and faculty with it.
func (h *DepartmentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Department(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Department deleted", fiber.Map{"id": id})
}

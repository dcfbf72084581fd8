package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/features/cascade"
	"copo_backend/internals/features/people/faculty/dto"
	"copo_backend/internals/features/people/faculty/model"
	"copo_backend/internals/features/references"
	authModel "copo_backend/internals/features/users/auth/model"
	authService "copo_backend/internals/features/users/auth/service"
	helper "copo_backend/internals/helpers"
)

type FacultyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewFacultyController(db *gorm.DB, log *zap.Logger) *FacultyController {
	if log == nil {
		log = zap.NewNop()
	}
	return &FacultyController{DB: db, Validate: helper.NewValidator(), Log: log}
}

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("faculty AS f").
		Select(`f.id, f.name, f.department_id, d.name AS department_name, f.email, f.phone,
			u.id AS user_id, u.user_name AS user_name`).
		Joins("LEFT JOIN departments d ON d.id = f.department_id").
		Joins("LEFT JOIN users u ON u.faculty_id = f.id")
}

func load(db *gorm.DB, id uint) (dto.FacultyResponse, error) {
	var out dto.FacultyResponse
	res := baseQuery(db).Where("f.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

// GET /api/faculty?department_id=
func (h *FacultyController) List(c *fiber.Ctx) error {
	q := baseQuery(h.DB.WithContext(helper.ReqCtx(c)))
	deptID, err := helper.QueryUint(c, "department_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if deptID != nil {
		q = q.Where("f.department_id = ?", *deptID)
	}
	rows := []dto.FacultyResponse{}
	if err := q.Order("f.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (h *FacultyController) GetByID(c *fiber.Ctx) error {
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

// POST /api/faculty creates the faculty row and its teacher account.
func (h *FacultyController) Create(c *fiber.Ctx) error {
	var req dto.CreateFacultyRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	req.Normalize()
	if err := helper.Validate(h.Validate, req); err != nil {
		return helper.FromError(c, err)
	}
	email, err := authService.NormalizeEmail(req.Email)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"email": {"Enter a valid email address."}})
	}

	var out dto.FacultyResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		deptID, err := references.Department(tx, req.DepartmentRef(), "department")
		if err != nil {
			return err
		}
		if err := references.Unique(tx, &model.FacultyModel{}, "email", email, 0, "faculty", "email"); err != nil {
			return err
		}
		if taken, err := authService.AccountExists(tx, email); err != nil {
			return err
		} else if taken {
			return helper.NewFieldError("email", "An account with this email already exists.")
		}

		m := model.FacultyModel{Name: req.Name, DepartmentID: deptID, Email: email, Phone: req.Phone}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if _, err := authService.ProvisionTeacher(tx, m.ID, email, req.Phone); err != nil {
			return err
		}
		out, err = load(tx, m.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	h.Log.Info("faculty created", zap.Uint("faculty_id", out.ID), zap.String("email", out.Email))
	return helper.JsonCreated(c, "Faculty created", out)
}

// PUT /api/faculty/:id keeps the linked account's email in step.
func (h *FacultyController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateFacultyRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}

	var out dto.FacultyResponse
	err = h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var m model.FacultyModel
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
		if req.Email.Present {
			raw := ""
			if req.Email.Set() {
				raw = *req.Email.Value
			}
			email, err := authService.NormalizeEmail(raw)
			if err != nil {
				return helper.NewFieldError("email", "Enter a valid email address.")
			}
			if email != m.Email {
				if err := references.Unique(tx, &model.FacultyModel{}, "email", email, m.ID, "faculty", "email"); err != nil {
					return err
				}
				var n int64
				if err := tx.Model(&authModel.UserModel{}).
					Where("LOWER(email) = ? AND (faculty_id IS NULL OR faculty_id <> ?)", email, m.ID).
					Count(&n).Error; err != nil {
					return err
				}
				if n > 0 {
					return helper.NewFieldError("email", "An account with this email already exists.")
				}
				if err := tx.Model(&authModel.UserModel{}).Where("faculty_id = ?", m.ID).
					Update("email", email).Error; err != nil {
					return err
				}
				m.Email = email
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
	return helper.JsonUpdated(c, "Faculty updated", out)
}

// Delete drops the faculty row, its batches and its login account.
func (h *FacultyController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		return cascade.Faculty(tx, id)
	}); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "Faculty deleted", fiber.Map{"id": id})
}

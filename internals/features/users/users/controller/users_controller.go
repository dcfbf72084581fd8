package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	authModel "copo_backend/internals/features/users/auth/model"
	userdto "copo_backend/internals/features/users/users/dto"
	helper "copo_backend/internals/helpers"
)

// AdminUserController manages login accounts.
type AdminUserController struct {
	DB *gorm.DB
}

func NewAdminUserController(db *gorm.DB) *AdminUserController { return &AdminUserController{DB: db} }

func baseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("users AS u").
		Select(`u.id, u.user_name, u.email, u.role, u.is_active, u.must_reset_credentials,
			u.faculty_id, f.name AS faculty_name, u.created_at`).
		Joins("LEFT JOIN faculty f ON f.id = u.faculty_id")
}

func load(db *gorm.DB, id uint) (userdto.AccountResponse, error) {
	var out userdto.AccountResponse
	res := baseQuery(db).Where("u.id = ?", id).Limit(1).Scan(&out)
	if res.Error != nil {
		return out, res.Error
	}
	if res.RowsAffected == 0 {
		return out, gorm.ErrRecordNotFound
	}
	return out, nil
}

// self rejects an admin acting on their own account.
func self(c *fiber.Ctx, id uint, action string) error {
	if uid, ok := c.Locals(helper.LocUserID).(uint); ok && uid == id {
		return fiber.NewError(fiber.StatusBadRequest, "You cannot "+action+" your own account.")
	}
	return nil
}

// GET /api/users?q=&role=
func (ac *AdminUserController) ListUsers(c *fiber.Ctx) error {
	tx := baseQuery(ac.DB.WithContext(helper.ReqCtx(c)))
	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("LOWER(u.user_name) LIKE ? OR LOWER(u.email) LIKE ?", like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		tx = tx.Where("u.role = ?", role)
	}
	rows := []userdto.AccountResponse{}
	if err := tx.Order("u.id ASC").Scan(&rows).Error; err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, len(rows))
}

func (ac *AdminUserController) GetUser(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := load(ac.DB.WithContext(helper.ReqCtx(c)), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// PUT /api/users/:id toggles is_active, role or the reset flag.
// Deactivating an account revokes its refresh tokens.
func (ac *AdminUserController) UpdateUser(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req userdto.UpdateAccountRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return helper.FromError(c, err)
	}
	if (req.IsActive.Set() && !*req.IsActive.Value) || req.Role.Present {
		if err := self(c, id, "deactivate or demote"); err != nil {
			return helper.FromError(c, err)
		}
	}

	var out userdto.AccountResponse
	err = ac.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		var u authModel.UserModel
		if err := tx.First(&u, id).Error; err != nil {
			return err
		}
		if err := req.Apply(&u, constants.IsValidRole); err != nil {
			return err
		}
		if err := tx.Save(&u).Error; err != nil {
			return err
		}
		if !u.IsActive {
			if err := tx.Where("user_id = ?", u.ID).Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
				return err
			}
		}
		var err error
		out, err = load(tx, u.ID)
		return err
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "User updated", out)
}

// DELETE /api/users/:id removes the account only; a linked faculty row stays.
func (ac *AdminUserController) DeleteUser(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := self(c, id, "delete"); err != nil {
		return helper.FromError(c, err)
	}
	err = ac.DB.WithContext(helper.ReqCtx(c)).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&authModel.UserModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": id})
}

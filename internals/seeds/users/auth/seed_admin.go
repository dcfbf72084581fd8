package auth

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	authModel "copo_backend/internals/features/users/auth/model"
	authService "copo_backend/internals/features/users/auth/service"
)

type AdminSeed struct {
	UserName string
	Email    string
	Password string
}

// SeedAdmin creates the first admin account unless one with that email exists.
func SeedAdmin(db *gorm.DB, in AdminSeed, log *zap.Logger) error {
	if strings.TrimSpace(in.Password) == "" {
		log.Info("admin seed skipped: no password configured")
		return nil
	}
	email, err := authService.NormalizeEmail(in.Email)
	if err != nil {
		return err
	}

	var existing authModel.UserModel
	err = db.Where("LOWER(email) = ?", email).First(&existing).Error
	if err == nil {
		log.Info("admin already present", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := authService.HashPassword(in.Password)
	if err != nil {
		return err
	}
	u := authModel.UserModel{
		UserName: strings.TrimSpace(in.UserName),
		Email:    email,
		Password: hash,
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&u).Error; err != nil {
		return err
	}
	log.Info("admin seeded", zap.String("user_name", u.UserName))
	return nil
}

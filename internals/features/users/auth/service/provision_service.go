package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"copo_backend/internals/constants"
	authModel "copo_backend/internals/features/users/auth/model"
)

var ErrInvalidEmail = errors.New("invalid email address")

// NormalizeEmail trims, lower-cases and validates an address.
func NormalizeEmail(raw string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(raw))
	if e == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e || !strings.Contains(e[strings.LastIndex(e, "@"):], ".") {
		return "", ErrInvalidEmail
	}
	return e, nil
}

func AccountExists(tx *gorm.DB, email string) (bool, error) {
	var n int64
	err := tx.Model(&authModel.UserModel{}).Where("LOWER(email) = ?", strings.ToLower(email)).Count(&n).Error
	return n > 0, err
}

// UniqueUserName returns base, or base2, base3, ... whichever is free.
func UniqueUserName(tx *gorm.DB, base string) (string, error) {
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "" {
		base = "teacher"
	}
	candidate := base
	for i := 2; i < 1000; i++ {
		var n int64
		if err := tx.Model(&authModel.UserModel{}).Where("user_name = ?", candidate).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", fmt.Errorf("no free username for %q", base)
}

// ProvisionTeacher creates the login account mirrored from a faculty row.
// The phone number is the initial password and the account must reset credentials on first login.
func ProvisionTeacher(tx *gorm.DB, facultyID uint, email, phone string) (*authModel.UserModel, error) {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	username, err := UniqueUserName(tx, local)
	if err != nil {
		return nil, err
	}
	initial := strings.TrimSpace(phone)
	if initial == "" {
		initial = username
	}
	hash, err := HashPassword(initial)
	if err != nil {
		return nil, err
	}
	fid := facultyID
	u := authModel.UserModel{
		UserName:             username,
		Email:                email,
		Password:             hash,
		Role:                 constants.RoleTeacher,
		MustResetCredentials: true,
		IsActive:             true,
		FacultyID:            &fid,
	}
	if err := tx.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

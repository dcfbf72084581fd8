package service

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	facultyModel "copo_backend/internals/features/people/faculty/model"
	authService "copo_backend/internals/features/users/auth/service"
)

// checkDepartments fails the whole upload on the first department name that does not exist.
func checkDepartments(tx *gorm.DB, t *Table) (map[string]uint, error) {
	ids := map[string]uint{}
	for i := range t.Rows {
		name := t.Get(i, "department")
		if name == "" {
			continue
		}
		if _, seen := ids[name]; seen {
			continue
		}
		id, err := DepartmentByName(tx, name)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Department '%s' does not exist.", name))
		}
		ids[name] = id
	}
	return ids, nil
}

// ImportFaculty creates faculty rows and their teacher accounts.
// Rows with a missing, invalid or already registered email are skipped by name.
func ImportFaculty(tx *gorm.DB, t *Table, log *zap.Logger) (FacultySummary, error) {
	sum := FacultySummary{Created: []string{}, Skipped: []string{}}
	departments, err := checkDepartments(tx, t)
	if err != nil {
		return sum, err
	}

	for i := range t.Rows {
		name := t.Get(i, "name")
		label := name
		if label == "" {
			label = t.Get(i, "email")
		}
		email, err := authService.NormalizeEmail(t.Get(i, "email"))
		if err != nil || name == "" {
			sum.Skipped = append(sum.Skipped, label)
			continue
		}
		deptID, ok := departments[t.Get(i, "department")]
		if !ok {
			sum.Skipped = append(sum.Skipped, label)
			continue
		}

		var n int64
		if err := tx.Model(&facultyModel.FacultyModel{}).Where("LOWER(email) = ?", email).Count(&n).Error; err != nil {
			return sum, err
		}
		taken, err := authService.AccountExists(tx, email)
		if err != nil {
			return sum, err
		}
		if n > 0 || taken {
			sum.Skipped = append(sum.Skipped, label)
			continue
		}

		phone := t.Get(i, "phone")
		f := facultyModel.FacultyModel{Name: name, DepartmentID: deptID, Email: email, Phone: phone}
		if err := tx.Create(&f).Error; err != nil {
			return sum, err
		}
		u, err := authService.ProvisionTeacher(tx, f.ID, email, phone)
		if err != nil {
			return sum, err
		}
		log.Debug("provisioned teacher account",
			zap.Uint("faculty_id", f.ID), zap.String("user_name", u.UserName))
		sum.Created = append(sum.Created, strings.TrimSpace(name))
	}
	return sum, nil
}

package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	departmentModel "copo_backend/internals/features/academics/departments/model"
	programmeModel "copo_backend/internals/features/academics/programmes/model"
	"copo_backend/internals/features/references"
)

const DefaultLevel = "UG"

// errRowSkipped marks a row the importer drops without failing the batch.
type errRowSkipped struct{ reason string }

func (e errRowSkipped) Error() string { return e.reason }

func skip(format string, args ...any) error {
	return errRowSkipped{reason: fmt.Sprintf(format, args...)}
}

func isSkip(err error) bool {
	var s errRowSkipped
	return errors.As(err, &s)
}

// DepartmentByName returns 0 when no department carries that name.
func DepartmentByName(tx *gorm.DB, name string) (uint, error) {
	var ids []uint
	err := tx.Model(&departmentModel.DepartmentModel{}).
		Where("name = ?", strings.TrimSpace(name)).Limit(1).Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	return ids[0], nil
}

// ProgrammeFor resolves a programme by name and creates it when missing.
// Creation needs an existing department; the level is created on demand.
func ProgrammeFor(tx *gorm.DB, name, department, level string) (programmeID, departmentID uint, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, 0, skip("programme is blank")
	}
	var p programmeModel.ProgrammeModel
	err = tx.Where("name = ?", name).First(&p).Error
	if err == nil {
		return p.ID, p.DepartmentID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, err
	}

	if strings.TrimSpace(department) == "" {
		return 0, 0, skip("programme %q does not exist and no department was given", name)
	}
	departmentID, err = DepartmentByName(tx, department)
	if err != nil {
		return 0, 0, err
	}
	if departmentID == 0 {
		return 0, 0, skip("department %q does not exist", department)
	}
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	levelID, err := references.LevelGetOrCreate(tx, level)
	if err != nil {
		return 0, 0, err
	}
	p = programmeModel.ProgrammeModel{Name: name, DepartmentID: departmentID, LevelID: levelID}
	if err := tx.Create(&p).Error; err != nil {
		return 0, 0, err
	}
	return p.ID, departmentID, nil
}

package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	studentModel "copo_backend/internals/features/people/students/model"
)

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// ImportStudents upserts students keyed by register number.
// Rows without a register number or name are skipped.
func ImportStudents(tx *gorm.DB, t *Table) (Summary, error) {
	sum := Summary{SkippedRows: []int{}}
	for i := range t.Rows {
		row := RowNumber(i)
		regNo := t.Get(i, "register_no")
		name := t.Get(i, "name")
		if regNo == "" || name == "" {
			sum.skip(row, "register_no and name are required")
			continue
		}

		year, err := t.Int(i, "year_of_admission")
		if err != nil {
			sum.skip(row, err.Error())
			continue
		}
		if year == 0 {
			derived, ok := studentModel.AdmissionYear(regNo)
			if !ok {
				sum.skip(row, "cannot derive year of admission from "+regNo)
				continue
			}
			year = derived
		}

		programmeID, _, err := ProgrammeFor(tx, t.Get(i, "programme"), t.Get(i, "department"), t.Get(i, "level"))
		if isSkip(err) {
			sum.skip(row, err.Error())
			continue
		}
		if err != nil {
			return sum, err
		}

		var s studentModel.StudentModel
		err = tx.Where("UPPER(register_no) = UPPER(?)", regNo).First(&s).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return sum, err
		}
		s.RegisterNo = regNo
		s.Name = name
		s.ProgrammeID = programmeID
		s.YearOfAdmission = year
		if v := t.Get(i, "phone"); v != "" {
			s.Phone = optional(v)
		}
		if v := strings.ToLower(t.Get(i, "email")); v != "" {
			s.Email = optional(v)
		}
		if err := tx.Save(&s).Error; err != nil {
			return sum, err
		}
		if found {
			sum.Updated++
		} else {
			sum.Created++
		}
	}
	return sum, nil
}

package service

import (
	"gorm.io/gorm"

	courseModel "copo_backend/internals/features/academics/courses/model"
)

// ImportCourses only appends; a row whose code already exists is skipped.
func ImportCourses(tx *gorm.DB, t *Table) (Summary, error) {
	sum := Summary{SkippedRows: []int{}}
	for i := range t.Rows {
		row := RowNumber(i)
		code := t.Get(i, "code")
		title := t.Get(i, "title")
		if code == "" || title == "" {
			sum.skip(row, "code and title are required")
			continue
		}

		var n int64
		if err := tx.Model(&courseModel.CourseModel{}).Where("code = ?", code).Count(&n).Error; err != nil {
			return sum, err
		}
		if n > 0 {
			sum.skip(row, "course "+code+" already exists")
			continue
		}

		programmeID, departmentID, err := ProgrammeFor(tx, t.Get(i, "programme"), t.Get(i, "department"), t.Get(i, "level"))
		if isSkip(err) {
			sum.skip(row, err.Error())
			continue
		}
		if err != nil {
			return sum, err
		}
		// the course may sit in another department than its programme
		if dept := t.Get(i, "department"); dept != "" {
			id, err := DepartmentByName(tx, dept)
			if err != nil {
				return sum, err
			}
			if id == 0 {
				sum.skip(row, "department "+dept+" does not exist")
				continue
			}
			departmentID = id
		}

		m := courseModel.CourseModel{
			Code:         code,
			Title:        title,
			DepartmentID: departmentID,
			ProgrammeID:  programmeID,
		}
		bad := false
		for _, f := range []struct {
			col string
			dst *int
		}{
			{"semester", &m.Semester},
			{"credits", &m.Credits},
			{"outcome_count", &m.OutcomeCount},
			{"syllabus_year", &m.SyllabusYear},
		} {
			v, err := t.Int(i, f.col)
			if err != nil || v < 0 {
				sum.skip(row, "invalid "+f.col)
				bad = true
				break
			}
			*f.dst = v
		}
		if bad {
			continue
		}
		if err := tx.Create(&m).Error; err != nil {
			return sum, err
		}
		sum.Created++
	}
	return sum, nil
}

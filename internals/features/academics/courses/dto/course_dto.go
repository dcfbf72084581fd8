package dto

import (
	"strings"

	"copo_backend/internals/features/academics/courses/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CreateCourseRequest struct {
	Code         string  `json:"code" validate:"required,max=40"`
	Title        string  `json:"title" validate:"required,max=200"`
	DepartmentID *uint   `json:"department_id"`
	Department   *string `json:"department"`
	ProgrammeID  *uint   `json:"programme_id"`
	Programme    *string `json:"programme"`
	Semester     int     `json:"semester" validate:"gte=0"`
	Credits      int     `json:"credits" validate:"gte=0"`
	OutcomeCount int     `json:"outcome_count" validate:"gte=0"`
	SyllabusYear int     `json:"syllabus_year" validate:"gte=0"`
}

func (r *CreateCourseRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Title = strings.TrimSpace(r.Title)
}

func (r CreateCourseRequest) DepartmentRef() references.Ref {
	return references.Ref{ID: r.DepartmentID, Name: r.Department}
}

func (r CreateCourseRequest) ProgrammeRef() references.Ref {
	return references.Ref{ID: r.ProgrammeID, Name: r.Programme}
}

func (r CreateCourseRequest) ToModel(departmentID, programmeID uint) model.CourseModel {
	return model.CourseModel{
		Code:         r.Code,
		Title:        r.Title,
		DepartmentID: departmentID,
		ProgrammeID:  programmeID,
		Semester:     r.Semester,
		Credits:      r.Credits,
		OutcomeCount: r.OutcomeCount,
		SyllabusYear: r.SyllabusYear,
	}
}

type UpdateCourseRequest struct {
	Code         helper.PatchField[string] `json:"code"`
	Title        helper.PatchField[string] `json:"title"`
	DepartmentID helper.PatchField[uint]   `json:"department_id"`
	Department   helper.PatchField[string] `json:"department"`
	ProgrammeID  helper.PatchField[uint]   `json:"programme_id"`
	Programme    helper.PatchField[string] `json:"programme"`
	Semester     helper.PatchField[int]    `json:"semester"`
	Credits      helper.PatchField[int]    `json:"credits"`
	OutcomeCount helper.PatchField[int]    `json:"outcome_count"`
	SyllabusYear helper.PatchField[int]    `json:"syllabus_year"`
}

func patchText(p helper.PatchField[string], field string, dst *string) error {
	if !p.Present {
		return nil
	}
	if !p.Set() || strings.TrimSpace(*p.Value) == "" {
		return helper.NewFieldError(field, "This field may not be blank.")
	}
	*dst = strings.TrimSpace(*p.Value)
	return nil
}

func patchCount(p helper.PatchField[int], field string, dst *int) error {
	if !p.Set() {
		return nil
	}
	if *p.Value < 0 {
		return helper.NewFieldError(field, "Must be greater than or equal to 0.")
	}
	*dst = *p.Value
	return nil
}

func (r UpdateCourseRequest) Apply(m *model.CourseModel) error {
	if err := patchText(r.Code, "code", &m.Code); err != nil {
		return err
	}
	if err := patchText(r.Title, "title", &m.Title); err != nil {
		return err
	}
	for _, p := range []struct {
		v     helper.PatchField[int]
		field string
		dst   *int
	}{
		{r.Semester, "semester", &m.Semester},
		{r.Credits, "credits", &m.Credits},
		{r.OutcomeCount, "outcome_count", &m.OutcomeCount},
		{r.SyllabusYear, "syllabus_year", &m.SyllabusYear},
	} {
		if err := patchCount(p.v, p.field, p.dst); err != nil {
			return err
		}
	}
	return nil
}

type CourseResponse struct {
	ID             uint   `json:"id"`
	Code           string `json:"code"`
	Title          string `json:"title"`
	DepartmentID   uint   `json:"department_id"`
	DepartmentName string `json:"department_name"`
	ProgrammeID    uint   `json:"programme_id"`
	ProgrammeName  string `json:"programme_name"`
	Semester       int    `json:"semester"`
	Credits        int    `json:"credits"`
	OutcomeCount   int    `json:"outcome_count"`
	SyllabusYear   int    `json:"syllabus_year"`
}

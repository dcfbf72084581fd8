package dto

import (
	"strings"
	"time"

	"copo_backend/internals/features/academics/batches/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CreateBatchRequest struct {
	CourseID  *uint   `json:"course_id"`
	Course    *string `json:"course"`
	FacultyID *uint   `json:"faculty_id"`
	Faculty   *string `json:"faculty"`
	Year      int     `json:"year" validate:"required,gte=1900,lte=3000"`
	Part      string  `json:"part" validate:"required,max=20"`
	Active    *bool   `json:"active"`
}

func (r *CreateBatchRequest) Normalize() { r.Part = strings.TrimSpace(r.Part) }

// CourseRef is nil when no course was sent; a batch may exist without one.
func (r CreateBatchRequest) CourseRef() *references.Ref {
	ref := references.Ref{ID: r.CourseID, Name: r.Course}
	if ref.Empty() {
		return nil
	}
	return &ref
}

func (r CreateBatchRequest) FacultyRef() references.Ref {
	return references.Ref{ID: r.FacultyID, Name: r.Faculty}
}

func (r CreateBatchRequest) ToModel(courseID *uint, facultyID uint) model.BatchModel {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return model.BatchModel{CourseID: courseID, FacultyID: facultyID, Year: r.Year, Part: r.Part, Active: active}
}

type UpdateBatchRequest struct {
	CourseID  helper.PatchField[uint]   `json:"course_id"`
	Course    helper.PatchField[string] `json:"course"`
	FacultyID helper.PatchField[uint]   `json:"faculty_id"`
	Faculty   helper.PatchField[string] `json:"faculty"`
	Year      helper.PatchField[int]    `json:"year"`
	Part      helper.PatchField[string] `json:"part"`
	Active    helper.PatchField[bool]   `json:"active"`
}

func (r UpdateBatchRequest) Apply(m *model.BatchModel) error {
	if r.Year.Present {
		if !r.Year.Set() || *r.Year.Value < 1900 || *r.Year.Value > 3000 {
			return helper.NewFieldError("year", "Enter a valid year.")
		}
		m.Year = *r.Year.Value
	}
	if r.Part.Present {
		if !r.Part.Set() || strings.TrimSpace(*r.Part.Value) == "" {
			return helper.NewFieldError("part", "This field may not be blank.")
		}
		m.Part = strings.TrimSpace(*r.Part.Value)
	}
	if r.Active.Set() {
		m.Active = *r.Active.Value
	}
	return nil
}

type BatchResponse struct {
	ID          uint    `json:"id"`
	CourseID    *uint   `json:"course_id"`
	CourseCode  *string `json:"course_code"`
	CourseTitle *string `json:"course_title"`
	FacultyID   uint    `json:"faculty_id"`
	FacultyName string  `json:"faculty_name"`
	Year        int     `json:"year"`
	Part        string  `json:"part"`
	Active      bool    `json:"active"`
}

type BatchExam struct {
	ID       uint       `json:"id"`
	BatchID  uint       `json:"-"`
	Name     string     `json:"name"`
	MaxMarks int        `json:"max_marks"`
	Duration int        `json:"duration"`
	ExamDate *time.Time `json:"exam_date"`
}

// BatchWithExams is one entry of /faculty-batches/exams.
type BatchWithExams struct {
	BatchResponse
	InternalExams []BatchExam `json:"internal_exams"`
}

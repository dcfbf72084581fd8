package dto

import (
	"strings"
	"time"

	"copo_backend/internals/features/exams/internal_exams/model"
	helper "copo_backend/internals/helpers"
)

// ParseExamDate accepts YYYY-MM-DD or RFC3339.
func ParseExamDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, helper.NewFieldError("exam_date", "Date has wrong format. Use YYYY-MM-DD.")
}

type CreateInternalExamRequest struct {
	BatchID  *uint   `json:"batch_id"`
	Batch    *uint   `json:"batch"`
	Name     string  `json:"name" validate:"required,max=120"`
	Duration int     `json:"duration" validate:"gte=0"`
	MaxMarks *int    `json:"max_marks" validate:"required,gte=1"`
	ExamDate *string `json:"exam_date"`
}

func (r *CreateInternalExamRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r CreateInternalExamRequest) BatchRef() *uint {
	if r.BatchID != nil {
		return r.BatchID
	}
	return r.Batch
}

func (r CreateInternalExamRequest) ToModel(batchID uint) (model.InternalExamModel, error) {
	m := model.InternalExamModel{BatchID: batchID, Name: r.Name, Duration: r.Duration, MaxMarks: *r.MaxMarks}
	if r.ExamDate != nil {
		d, err := ParseExamDate(*r.ExamDate)
		if err != nil {
			return m, err
		}
		m.ExamDate = d
	}
	return m, nil
}

type UpdateInternalExamRequest struct {
	BatchID  helper.PatchField[uint]   `json:"batch_id"`
	Name     helper.PatchField[string] `json:"name"`
	Duration helper.PatchField[int]    `json:"duration"`
	MaxMarks helper.PatchField[int]    `json:"max_marks"`
	ExamDate helper.PatchField[string] `json:"exam_date"`
}

func (r UpdateInternalExamRequest) Apply(m *model.InternalExamModel) error {
	if r.Name.Present {
		if !r.Name.Set() || strings.TrimSpace(*r.Name.Value) == "" {
			return helper.NewFieldError("name", "This field may not be blank.")
		}
		m.Name = strings.TrimSpace(*r.Name.Value)
	}
	if r.Duration.Set() {
		if *r.Duration.Value < 0 {
			return helper.NewFieldError("duration", "Must be greater than or equal to 0.")
		}
		m.Duration = *r.Duration.Value
	}
	if r.MaxMarks.Present {
		if !r.MaxMarks.Set() || *r.MaxMarks.Value < 1 {
			return helper.NewFieldError("max_marks", "Must be greater than or equal to 1.")
		}
		m.MaxMarks = *r.MaxMarks.Value
	}
	if r.ExamDate.Present {
		m.ExamDate = nil
		if r.ExamDate.Set() {
			d, err := ParseExamDate(*r.ExamDate.Value)
			if err != nil {
				return err
			}
			m.ExamDate = d
		}
	}
	return nil
}

type InternalExamResponse struct {
	ID          uint       `json:"id"`
	BatchID     uint       `json:"batch_id"`
	Name        string     `json:"name"`
	Duration    int        `json:"duration"`
	MaxMarks    int        `json:"max_marks"`
	ExamDate    *time.Time `json:"exam_date"`
	CourseID    *uint      `json:"course_id"`
	CourseCode  *string    `json:"course_code"`
	CourseTitle *string    `json:"course_title"`
}

package dto

import (
	"copo_backend/internals/features/exams/assessments/model"
	helper "copo_backend/internals/helpers"
)

type CreateAssessmentRequest struct {
	BatchID  *uint `json:"batch_id"`
	Batch    *uint `json:"batch"`
	MaxMarks *int  `json:"max_marks" validate:"required,gte=1"`
}

// BatchRef takes batch_id, or the older "batch" key.
func (r CreateAssessmentRequest) BatchRef() *uint {
	if r.BatchID != nil {
		return r.BatchID
	}
	return r.Batch
}

func (r CreateAssessmentRequest) ToModel(batchID uint) model.AssessmentModel {
	return model.AssessmentModel{BatchID: batchID, MaxMarks: *r.MaxMarks}
}

type UpdateAssessmentRequest struct {
	BatchID  helper.PatchField[uint] `json:"batch_id"`
	MaxMarks helper.PatchField[int]  `json:"max_marks"`
}

func (r UpdateAssessmentRequest) Apply(m *model.AssessmentModel) error {
	if r.MaxMarks.Present {
		if !r.MaxMarks.Set() || *r.MaxMarks.Value < 1 {
			return helper.NewFieldError("max_marks", "Must be greater than or equal to 1.")
		}
		m.MaxMarks = *r.MaxMarks.Value
	}
	return nil
}

type AssessmentResponse struct {
	ID          uint    `json:"id"`
	Kind        string  `json:"kind"`
	BatchID     uint    `json:"batch_id"`
	MaxMarks    int     `json:"max_marks"`
	CourseCode  *string `json:"course_code"`
	CourseTitle *string `json:"course_title"`
	Year        int     `json:"year"`
	Part        string  `json:"part"`
}

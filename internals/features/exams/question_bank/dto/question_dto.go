package dto

import (
	"strings"

	"copo_backend/internals/features/exams/question_bank/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CreateQuestionRequest struct {
	CourseID *uint   `json:"course_id"`
	Course   *string `json:"course"`
	COID     *uint   `json:"co_id"`
	CO       *string `json:"co"`
	Text     string  `json:"text" validate:"required"`
	Marks    *int    `json:"marks" validate:"required,gte=0"`
}

func (r *CreateQuestionRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

func (r CreateQuestionRequest) CourseRef() references.Ref {
	return references.Ref{ID: r.CourseID, Name: r.Course}
}

func (r CreateQuestionRequest) CORef() references.Ref {
	return references.Ref{ID: r.COID, Name: r.CO}
}

func (r CreateQuestionRequest) ToModel(courseID, coID uint) model.QuestionModel {
	return model.QuestionModel{CourseID: courseID, COID: coID, Text: r.Text, Marks: *r.Marks}
}

type UpdateQuestionRequest struct {
	CourseID helper.PatchField[uint]   `json:"course_id"`
	Course   helper.PatchField[string] `json:"course"`
	COID     helper.PatchField[uint]   `json:"co_id"`
	CO       helper.PatchField[string] `json:"co"`
	Text     helper.PatchField[string] `json:"text"`
	Marks    helper.PatchField[int]    `json:"marks"`
}

func (r UpdateQuestionRequest) Apply(m *model.QuestionModel) error {
	if r.Text.Present {
		if !r.Text.Set() || strings.TrimSpace(*r.Text.Value) == "" {
			return helper.NewFieldError("text", "This field may not be blank.")
		}
		m.Text = strings.TrimSpace(*r.Text.Value)
	}
	if r.Marks.Present {
		if !r.Marks.Set() || *r.Marks.Value < 0 {
			return helper.NewFieldError("marks", "Must be greater than or equal to 0.")
		}
		m.Marks = *r.Marks.Value
	}
	return nil
}

type QuestionResponse struct {
	ID         uint   `json:"id"`
	CourseID   uint   `json:"course_id"`
	CourseCode string `json:"course_code"`
	COID       uint   `json:"co_id"`
	COLabel    string `json:"co_label"`
	Text       string `json:"text"`
	Marks      int    `json:"marks"`
}

package dto

import (
	"strings"

	"copo_backend/internals/features/exams/internal_exams/model"
	helper "copo_backend/internals/helpers"
)

type CreateExamSectionRequest struct {
	Name          string  `json:"name" validate:"required,max=80"`
	QuestionCount *int    `json:"question_count" validate:"required,gte=0"`
	AnswerCount   *int    `json:"answer_count" validate:"required,gte=0"`
	CeilingMark   int     `json:"ceiling_mark" validate:"gte=0"`
	Description   *string `json:"description"`
}

func (r *CreateExamSectionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = helper.TrimPtr(r.Description)
}

func (r CreateExamSectionRequest) ToModel(examID uint) (model.ExamSectionModel, error) {
	m := model.ExamSectionModel{
		InternalExamID: examID,
		Name:           r.Name,
		QuestionCount:  *r.QuestionCount,
		AnswerCount:    *r.AnswerCount,
		CeilingMark:    r.CeilingMark,
		Description:    r.Description,
	}
	return m, CheckCounts(m)
}

// CheckCounts holds answer_count <= question_count.
func CheckCounts(m model.ExamSectionModel) error {
	if m.AnswerCount > m.QuestionCount {
		return helper.NewFieldError("answer_count", "Must not exceed question_count.")
	}
	return nil
}

type UpdateExamSectionRequest struct {
	Name          helper.PatchField[string] `json:"name"`
	QuestionCount helper.PatchField[int]    `json:"question_count"`
	AnswerCount   helper.PatchField[int]    `json:"answer_count"`
	CeilingMark   helper.PatchField[int]    `json:"ceiling_mark"`
	Description   helper.PatchField[string] `json:"description"`
}

func (r UpdateExamSectionRequest) Apply(m *model.ExamSectionModel) error {
	if r.Name.Present {
		if !r.Name.Set() || strings.TrimSpace(*r.Name.Value) == "" {
			return helper.NewFieldError("name", "This field may not be blank.")
		}
		m.Name = strings.TrimSpace(*r.Name.Value)
	}
	for _, p := range []struct {
		v     helper.PatchField[int]
		field string
		dst   *int
	}{
		{r.QuestionCount, "question_count", &m.QuestionCount},
		{r.AnswerCount, "answer_count", &m.AnswerCount},
		{r.CeilingMark, "ceiling_mark", &m.CeilingMark},
	} {
		if !p.v.Present {
			continue
		}
		if !p.v.Set() || *p.v.Value < 0 {
			return helper.NewFieldError(p.field, "Must be greater than or equal to 0.")
		}
		*p.dst = *p.v.Value
	}
	if r.Description.Present {
		m.Description = helper.TrimPtr(r.Description.Value)
	}
	return CheckCounts(*m)
}

type ExamSectionResponse struct {
	ID             uint    `json:"id"`
	InternalExamID uint    `json:"internal_exam_id"`
	Name           string  `json:"name"`
	QuestionCount  int     `json:"question_count"`
	AnswerCount    int     `json:"answer_count"`
	CeilingMark    int     `json:"ceiling_mark"`
	Description    *string `json:"description"`
}

func FromExamSectionModel(m model.ExamSectionModel) ExamSectionResponse {
	return ExamSectionResponse{
		ID:             m.ID,
		InternalExamID: m.InternalExamID,
		Name:           m.Name,
		QuestionCount:  m.QuestionCount,
		AnswerCount:    m.AnswerCount,
		CeilingMark:    m.CeilingMark,
		Description:    m.Description,
	}
}

func FromExamSectionModels(rows []model.ExamSectionModel) []ExamSectionResponse {
	out := make([]ExamSectionResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromExamSectionModel(m))
	}
	return out
}

// QuestionIDsRequest is the body of sync (PUT) and add (POST).
// An empty list is valid for sync and clears the section.
type QuestionIDsRequest struct {
	QuestionIDs *[]uint `json:"question_ids" validate:"required"`
}

func (r QuestionIDsRequest) IDs() []uint {
	if r.QuestionIDs == nil {
		return nil
	}
	return *r.QuestionIDs
}

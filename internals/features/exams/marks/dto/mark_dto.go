package dto

import (
	"strings"

	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

// CreateMarkRequest identifies the student by id or register number.
type CreateMarkRequest struct {
	StudentID  *uint   `json:"student_id"`
	RegisterNo *string `json:"register_no"`
	ExamID     *uint   `json:"exam_id" validate:"required"`
	Marks      *int    `json:"marks" validate:"required"`
}

func (r CreateMarkRequest) StudentRef() references.Ref {
	var no *string
	if r.RegisterNo != nil {
		v := strings.TrimSpace(*r.RegisterNo)
		no = &v
	}
	return references.Ref{ID: r.StudentID, Name: no}
}

type UpdateMarkRequest struct {
	Marks helper.PatchField[int] `json:"marks"`
}

type BulkMarkRow struct {
	StudentID  *uint   `json:"student_id"`
	RegisterNo *string `json:"register_no"`
	Marks      *int    `json:"marks" validate:"required"`
}

type BulkMarkRequest struct {
	ExamID *uint         `json:"exam_id" validate:"required"`
	Marks  []BulkMarkRow `json:"marks" validate:"required,dive"`
}

// Row lifts one bulk row into the single-mark shape.
func (r BulkMarkRequest) Row(i int) CreateMarkRequest {
	row := r.Marks[i]
	return CreateMarkRequest{
		StudentID:  row.StudentID,
		RegisterNo: row.RegisterNo,
		ExamID:     r.ExamID,
		Marks:      row.Marks,
	}
}

type MarkResponse struct {
	ID          uint   `json:"id"`
	Kind        string `json:"kind"`
	StudentID   uint   `json:"student_id"`
	RegisterNo  string `json:"register_no"`
	StudentName string `json:"student_name"`
	ExamID      uint   `json:"exam_id"`
	Marks       int    `json:"marks"`
}

package dto

import (
	"strings"

	"copo_backend/internals/features/people/faculty/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CreateFacultyRequest struct {
	Name         string  `json:"name" validate:"required,max=150"`
	DepartmentID *uint   `json:"department_id"`
	Department   *string `json:"department"`
	Email        string  `json:"email" validate:"required,max=254"`
	Phone        string  `json:"phone" validate:"max=20"`
}

func (r *CreateFacultyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r CreateFacultyRequest) DepartmentRef() references.Ref {
	return references.Ref{ID: r.DepartmentID, Name: r.Department}
}

type UpdateFacultyRequest struct {
	Name         helper.PatchField[string] `json:"name"`
	DepartmentID helper.PatchField[uint]   `json:"department_id"`
	Department   helper.PatchField[string] `json:"department"`
	Email        helper.PatchField[string] `json:"email"`
	Phone        helper.PatchField[string] `json:"phone"`
}

func (r UpdateFacultyRequest) Apply(m *model.FacultyModel) error {
	if r.Name.Present {
		if !r.Name.Set() || strings.TrimSpace(*r.Name.Value) == "" {
			return helper.NewFieldError("name", "This field may not be blank.")
		}
		m.Name = strings.TrimSpace(*r.Name.Value)
	}
	if r.Phone.Present {
		m.Phone = ""
		if r.Phone.Set() {
			m.Phone = strings.TrimSpace(*r.Phone.Value)
		}
	}
	return nil
}

type FacultyResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	DepartmentID   uint    `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	UserID         *uint   `json:"user_id"`
	UserName       *string `json:"user_name"`
}

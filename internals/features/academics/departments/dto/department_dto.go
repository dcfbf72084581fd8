package dto

import (
	"strings"

	"copo_backend/internals/features/academics/departments/model"
	helper "copo_backend/internals/helpers"
)

type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,max=150"`
}

func (r *CreateDepartmentRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r CreateDepartmentRequest) ToModel() model.DepartmentModel {
	return model.DepartmentModel{Name: r.Name}
}

type UpdateDepartmentRequest struct {
	Name helper.PatchField[string] `json:"name"`
}

// Apply writes the present fields onto m.
func (r UpdateDepartmentRequest) Apply(m *model.DepartmentModel) error {
	if r.Name.Present {
		if !r.Name.Set() || strings.TrimSpace(*r.Name.Value) == "" {
			return helper.NewFieldError("name", "This field may not be blank.")
		}
		m.Name = strings.TrimSpace(*r.Name.Value)
	}
	return nil
}

type DepartmentResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func FromDepartmentModel(m model.DepartmentModel) DepartmentResponse {
	return DepartmentResponse{ID: m.ID, Name: m.Name}
}

func FromDepartmentModels(rows []model.DepartmentModel) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromDepartmentModel(m))
	}
	return out
}

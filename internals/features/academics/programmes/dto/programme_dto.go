package dto

import (
	"strings"

	"copo_backend/internals/features/academics/programmes/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

// CreateProgrammeRequest takes department/level by id, or by name for older clients.
type CreateProgrammeRequest struct {
	Name         string  `json:"name" validate:"required,max=150"`
	DepartmentID *uint   `json:"department_id"`
	Department   *string `json:"department"`
	LevelID      *uint   `json:"level_id"`
	Level        *string `json:"level"`
	OutcomeCount int     `json:"outcome_count" validate:"gte=0"`
	Duration     int     `json:"duration" validate:"gte=0"`
}

func (r *CreateProgrammeRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r CreateProgrammeRequest) DepartmentRef() references.Ref {
	return references.Ref{ID: r.DepartmentID, Name: r.Department}
}

func (r CreateProgrammeRequest) LevelRef() references.Ref {
	return references.Ref{ID: r.LevelID, Name: r.Level}
}

func (r CreateProgrammeRequest) ToModel(departmentID, levelID uint) model.ProgrammeModel {
	return model.ProgrammeModel{
		Name:         r.Name,
		DepartmentID: departmentID,
		LevelID:      levelID,
		OutcomeCount: r.OutcomeCount,
		Duration:     r.Duration,
	}
}

type UpdateProgrammeRequest struct {
	Name         helper.PatchField[string] `json:"name"`
	DepartmentID helper.PatchField[uint]   `json:"department_id"`
	Department   helper.PatchField[string] `json:"department"`
	LevelID      helper.PatchField[uint]   `json:"level_id"`
	Level        helper.PatchField[string] `json:"level"`
	OutcomeCount helper.PatchField[int]    `json:"outcome_count"`
	Duration     helper.PatchField[int]    `json:"duration"`
}

// Apply copies scalar fields. References are resolved by the caller.
func (r UpdateProgrammeRequest) Apply(m *model.ProgrammeModel) error {
	if r.Name.Present {
		if !r.Name.Set() || strings.TrimSpace(*r.Name.Value) == "" {
			return helper.NewFieldError("name", "This field may not be blank.")
		}
		m.Name = strings.TrimSpace(*r.Name.Value)
	}
	if r.OutcomeCount.Set() {
		if *r.OutcomeCount.Value < 0 {
			return helper.NewFieldError("outcome_count", "Must be greater than or equal to 0.")
		}
		m.OutcomeCount = *r.OutcomeCount.Value
	}
	if r.Duration.Set() {
		if *r.Duration.Value < 0 {
			return helper.NewFieldError("duration", "Must be greater than or equal to 0.")
		}
		m.Duration = *r.Duration.Value
	}
	return nil
}

// ProgrammeResponse carries the parent names for display.
type ProgrammeResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	DepartmentID   uint   `json:"department_id"`
	DepartmentName string `json:"department_name"`
	LevelID        uint   `json:"level_id"`
	LevelName      string `json:"level_name"`
	OutcomeCount   int    `json:"outcome_count"`
	Duration       int    `json:"duration"`
}

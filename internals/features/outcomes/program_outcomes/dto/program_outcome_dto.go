package dto

import (
	"strings"

	"copo_backend/internals/features/outcomes/program_outcomes/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CreateProgramOutcomeRequest struct {
	Label       string  `json:"label" validate:"required,max=40"`
	Description string  `json:"description" validate:"required"`
	LevelID     *uint   `json:"level_id"`
	Level       *string `json:"level"`
}

func (r *CreateProgramOutcomeRequest) Normalize() {
	r.Label = strings.TrimSpace(r.Label)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateProgramOutcomeRequest) LevelRef() references.Ref {
	return references.Ref{ID: r.LevelID, Name: r.Level}
}

func (r CreateProgramOutcomeRequest) ToModel(levelID uint) model.ProgramOutcomeModel {
	return model.ProgramOutcomeModel{Label: r.Label, Description: r.Description, LevelID: levelID}
}

type UpdateProgramOutcomeRequest struct {
	Label       helper.PatchField[string] `json:"label"`
	Description helper.PatchField[string] `json:"description"`
	LevelID     helper.PatchField[uint]   `json:"level_id"`
	Level       helper.PatchField[string] `json:"level"`
}

func (r UpdateProgramOutcomeRequest) Apply(m *model.ProgramOutcomeModel) error {
	if r.Label.Present {
		if !r.Label.Set() || strings.TrimSpace(*r.Label.Value) == "" {
			return helper.NewFieldError("label", "This field may not be blank.")
		}
		m.Label = strings.TrimSpace(*r.Label.Value)
	}
	if r.Description.Present {
		if !r.Description.Set() || strings.TrimSpace(*r.Description.Value) == "" {
			return helper.NewFieldError("description", "This field may not be blank.")
		}
		m.Description = strings.TrimSpace(*r.Description.Value)
	}
	return nil
}

type ProgramOutcomeResponse struct {
	ID          uint   `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	LevelID     uint   `json:"level_id"`
	LevelName   string `json:"level_name"`
}

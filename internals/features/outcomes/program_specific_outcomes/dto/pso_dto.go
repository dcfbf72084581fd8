package dto

import (
	"strings"

	"copo_backend/internals/features/outcomes/program_specific_outcomes/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CreatePSORequest struct {
	ProgrammeID *uint   `json:"programme_id"`
	Programme   *string `json:"programme"`
	Label       string  `json:"label" validate:"required,max=40"`
	Description string  `json:"description" validate:"required"`
}

func (r *CreatePSORequest) Normalize() {
	r.Label = strings.TrimSpace(r.Label)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreatePSORequest) ProgrammeRef() references.Ref {
	return references.Ref{ID: r.ProgrammeID, Name: r.Programme}
}

func (r CreatePSORequest) ToModel(programmeID uint) model.ProgramSpecificOutcomeModel {
	return model.ProgramSpecificOutcomeModel{ProgrammeID: programmeID, Label: r.Label, Description: r.Description}
}

type UpdatePSORequest struct {
	ProgrammeID helper.PatchField[uint]   `json:"programme_id"`
	Programme   helper.PatchField[string] `json:"programme"`
	Label       helper.PatchField[string] `json:"label"`
	Description helper.PatchField[string] `json:"description"`
}

func (r UpdatePSORequest) Apply(m *model.ProgramSpecificOutcomeModel) error {
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

type PSOResponse struct {
	ID            uint   `json:"id"`
	ProgrammeID   uint   `json:"programme_id"`
	ProgrammeName string `json:"programme_name"`
	Label         string `json:"label"`
	Description   string `json:"description"`
}

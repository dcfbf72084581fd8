package dto

import (
	"strings"

	"copo_backend/internals/features/academics/levels/model"
	helper "copo_backend/internals/helpers"
)

type CreateLevelRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

func (r *CreateLevelRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r CreateLevelRequest) ToModel() model.LevelModel { return model.LevelModel{Name: r.Name} }

type UpdateLevelRequest struct {
	Name helper.PatchField[string] `json:"name"`
}

func (r UpdateLevelRequest) Apply(m *model.LevelModel) error {
	if r.Name.Present {
		if !r.Name.Set() || strings.TrimSpace(*r.Name.Value) == "" {
			return helper.NewFieldError("name", "This field may not be blank.")
		}
		m.Name = strings.TrimSpace(*r.Name.Value)
	}
	return nil
}

type LevelResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func FromLevelModel(m model.LevelModel) LevelResponse { return LevelResponse{ID: m.ID, Name: m.Name} }

func FromLevelModels(rows []model.LevelModel) []LevelResponse {
	out := make([]LevelResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromLevelModel(m))
	}
	return out
}

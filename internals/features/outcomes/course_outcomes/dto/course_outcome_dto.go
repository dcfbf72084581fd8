package dto

import (
	"strings"

	"copo_backend/internals/features/outcomes/course_outcomes/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CreateCourseOutcomeRequest struct {
	CourseID      *uint    `json:"course_id"`
	Course        *string  `json:"course"`
	Label         string   `json:"label" validate:"required,max=40"`
	Description   string   `json:"description" validate:"required"`
	BloomTaxonomy []string `json:"bloom_taxonomy"`
}

func (r *CreateCourseOutcomeRequest) Normalize() {
	r.Label = strings.TrimSpace(r.Label)
	r.Description = strings.TrimSpace(r.Description)
}

// CourseRef is nil when no course was sent.
func (r CreateCourseOutcomeRequest) CourseRef() *references.Ref {
	ref := references.Ref{ID: r.CourseID, Name: r.Course}
	if ref.Empty() {
		return nil
	}
	return &ref
}

func (r CreateCourseOutcomeRequest) ToModel(courseID *uint) (model.CourseOutcomeModel, error) {
	set, err := model.ParseTaxonomySet(r.BloomTaxonomy)
	if err != nil {
		return model.CourseOutcomeModel{}, helper.NewFieldError("bloom_taxonomy", err.Error())
	}
	m := model.CourseOutcomeModel{CourseID: courseID, Label: r.Label, Description: r.Description}
	m.SetTaxonomy(set)
	return m, nil
}

// UpdateCourseOutcomeRequest also takes the six 0/1 level keys at top level
// the way older clients send them.
type UpdateCourseOutcomeRequest struct {
	CourseID      helper.PatchField[uint]          `json:"course_id"`
	Course        helper.PatchField[string]        `json:"course"`
	Label         helper.PatchField[string]        `json:"label"`
	Description   helper.PatchField[string]        `json:"description"`
	BloomTaxonomy helper.PatchField[TaxonomyInput] `json:"bloom_taxonomy"`

	Remember   helper.PatchField[int] `json:"remember"`
	Understand helper.PatchField[int] `json:"understand"`
	Apply      helper.PatchField[int] `json:"apply"`
	Analyze    helper.PatchField[int] `json:"analyze"`
	Evaluate   helper.PatchField[int] `json:"evaluate"`
	Create     helper.PatchField[int] `json:"create"`
}

func (r UpdateCourseOutcomeRequest) flagToggles() map[string]any {
	out := map[string]any{}
	for name, p := range map[model.TaxonomyLevel]helper.PatchField[int]{
		model.Remember: r.Remember, model.Understand: r.Understand, model.Apply: r.Apply,
		model.Analyze: r.Analyze, model.Evaluate: r.Evaluate, model.Create: r.Create,
	} {
		if p.Set() {
			out[string(name)] = float64(*p.Value)
		}
	}
	return out
}

func (r UpdateCourseOutcomeRequest) ApplyTo(m *model.CourseOutcomeModel) error {
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

	set := m.Taxonomy()
	if r.BloomTaxonomy.Present {
		in := TaxonomyInput{}
		if r.BloomTaxonomy.Value != nil {
			in = *r.BloomTaxonomy.Value
		}
		var err error
		if set, err = in.Resolve(set); err != nil {
			return err
		}
	}
	if flags := r.flagToggles(); len(flags) > 0 {
		var err error
		if set, err = (TaxonomyInput{Toggles: flags}).Resolve(set); err != nil {
			return err
		}
	}
	m.SetTaxonomy(set)
	return nil
}

type CourseOutcomeResponse struct {
	ID            uint                  `json:"id"`
	CourseID      *uint                 `json:"course_id"`
	CourseCode    *string               `json:"course_code"`
	Label         string                `json:"label"`
	Description   string                `json:"description"`
	BloomTaxonomy []model.TaxonomyLevel `json:"bloom_taxonomy"`
	Remember      int                   `json:"remember"`
	Understand    int                   `json:"understand"`
	Apply         int                   `json:"apply"`
	Analyze       int                   `json:"analyze"`
	Evaluate      int                   `json:"evaluate"`
	Create        int                   `json:"create"`
}

func FromCourseOutcomeModel(m model.CourseOutcomeModel, courseCode *string) CourseOutcomeResponse {
	set := m.Taxonomy()
	flags := set.Flags()
	levels := []model.TaxonomyLevel(set)
	if levels == nil {
		levels = []model.TaxonomyLevel{}
	}
	return CourseOutcomeResponse{
		ID:            m.ID,
		CourseID:      m.CourseID,
		CourseCode:    courseCode,
		Label:         m.Label,
		Description:   m.Description,
		BloomTaxonomy: levels,
		Remember:      flags[model.Remember],
		Understand:    flags[model.Understand],
		Apply:         flags[model.Apply],
		Analyze:       flags[model.Analyze],
		Evaluate:      flags[model.Evaluate],
		Create:        flags[model.Create],
	}
}

package dto

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"

	"copo_backend/internals/features/outcomes/course_outcomes/model"
	helper "copo_backend/internals/helpers"
)

// TaxonomyInput is either a list of level names, which replaces the set,
// or the legacy {"apply":1,"create":0} mapping, which toggles members.
type TaxonomyInput struct {
	List    []string
	Toggles map[string]any
}

func (t *TaxonomyInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		return sonic.Unmarshal(b, &t.Toggles)
	}
	return sonic.Unmarshal(b, &t.List)
}

func toggleValue(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		if x == 0 || x == 1 {
			return x == 1, true
		}
	case int64:
		if x == 0 || x == 1 {
			return x == 1, true
		}
	case string:
		if x == "0" || x == "1" {
			return x == "1", true
		}
	}
	return false, false
}

// Resolve applies the input onto current.
func (t TaxonomyInput) Resolve(current model.TaxonomySet) (model.TaxonomySet, error) {
	if t.Toggles == nil {
		set, err := model.ParseTaxonomySet(t.List)
		if err != nil {
			return nil, helper.NewFieldError("bloom_taxonomy", err.Error())
		}
		return set, nil
	}

	keys := make([]string, 0, len(t.Toggles))
	for k := range t.Toggles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var bad []string
	out := current
	for _, k := range keys {
		l, ok := model.ParseTaxonomyLevel(k)
		if !ok {
			bad = append(bad, k)
			continue
		}
		member, ok := toggleValue(t.Toggles[k])
		if !ok {
			return nil, helper.NewFieldError("bloom_taxonomy", fmt.Sprintf("Value for %q must be 0 or 1.", k))
		}
		out = out.With(l, member)
	}
	if len(bad) > 0 {
		return nil, helper.NewFieldError("bloom_taxonomy", (&model.ErrInvalidTaxonomy{Names: bad}).Error())
	}
	return out, nil
}

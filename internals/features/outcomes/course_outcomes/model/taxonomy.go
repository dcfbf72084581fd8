package model

import (
	"fmt"
	"sort"
	"strings"
)

type TaxonomyLevel string

const (
	Remember   TaxonomyLevel = "remember"
	Understand TaxonomyLevel = "understand"
	Apply      TaxonomyLevel = "apply"
	Analyze    TaxonomyLevel = "analyze"
	Evaluate   TaxonomyLevel = "evaluate"
	Create     TaxonomyLevel = "create"
)

// TaxonomyLevels is the canonical (cognitive) order.
var TaxonomyLevels = []TaxonomyLevel{Remember, Understand, Apply, Analyze, Evaluate, Create}

func rank(l TaxonomyLevel) int {
	for i, v := range TaxonomyLevels {
		if v == l {
			return i
		}
	}
	return -1
}

func ParseTaxonomyLevel(s string) (TaxonomyLevel, bool) {
	l := TaxonomyLevel(strings.ToLower(strings.TrimSpace(s)))
	return l, rank(l) >= 0
}

// ErrInvalidTaxonomy lists every name that is not one of the six levels.
type ErrInvalidTaxonomy struct {
	Names []string
}

func (e *ErrInvalidTaxonomy) Error() string {
	return fmt.Sprintf("invalid bloom taxonomy level(s): %s", strings.Join(e.Names, ", "))
}

// TaxonomySet is a set of levels kept deduplicated and in canonical order.
type TaxonomySet []TaxonomyLevel

func ParseTaxonomySet(names []string) (TaxonomySet, error) {
	var bad []string
	seen := map[TaxonomyLevel]bool{}
	for _, n := range names {
		l, ok := ParseTaxonomyLevel(n)
		if !ok {
			bad = append(bad, n)
			continue
		}
		seen[l] = true
	}
	if len(bad) > 0 {
		return nil, &ErrInvalidTaxonomy{Names: bad}
	}
	out := make(TaxonomySet, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	out.normalize()
	return out, nil
}

func (s *TaxonomySet) normalize() {
	sort.Slice(*s, func(i, j int) bool { return rank((*s)[i]) < rank((*s)[j]) })
}

func (s TaxonomySet) Has(l TaxonomyLevel) bool {
	for _, v := range s {
		if v == l {
			return true
		}
	}
	return false
}

// With returns a copy of s with l added or removed.
func (s TaxonomySet) With(l TaxonomyLevel, member bool) TaxonomySet {
	out := make(TaxonomySet, 0, len(s)+1)
	for _, v := range s {
		if v != l {
			out = append(out, v)
		}
	}
	if member {
		out = append(out, l)
	}
	out.normalize()
	return out
}

// Flags renders the set as the six 0/1 integers keyed by level name.
func (s TaxonomySet) Flags() map[TaxonomyLevel]int {
	out := make(map[TaxonomyLevel]int, len(TaxonomyLevels))
	for _, l := range TaxonomyLevels {
		out[l] = 0
		if s.Has(l) {
			out[l] = 1
		}
	}
	return out
}

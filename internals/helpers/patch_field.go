package helper

import "github.com/bytedance/sonic"

/* =========================================================
   PATCH FIELD: tri-state (absent | null | value)
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := sonic.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

// Set reports whether a non-null value was sent.
func (p PatchField[T]) Set() bool { return p.Present && p.Value != nil }

package dto

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	helper "copo_backend/internals/helpers"
)

const (
	DefaultCount = 5
	MaxCount     = 30
)

// GenerateForm is the non-file part of the upload-pdf form.
type GenerateForm struct {
	Count    int
	Marks    int
	CourseID *uint
	COID     *uint
	Save     bool
}

func formInt(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, helper.NewFieldError(key, "Must be a non-negative integer.")
	}
	return &n, nil
}

func formID(c *fiber.Ctx, key string) (*uint, error) {
	n, err := formInt(c, key)
	if err != nil || n == nil || *n == 0 {
		return nil, err
	}
	v := uint(*n)
	return &v, nil
}

func ParseGenerateForm(c *fiber.Ctx) (GenerateForm, error) {
	f := GenerateForm{Count: DefaultCount}
	if n, err := formInt(c, "count"); err != nil {
		return f, err
	} else if n != nil && *n > 0 {
		f.Count = *n
	}
	if f.Count > MaxCount {
		return f, helper.NewFieldError("count", "Must be at most "+strconv.Itoa(MaxCount)+".")
	}
	if n, err := formInt(c, "marks"); err != nil {
		return f, err
	} else if n != nil {
		f.Marks = *n
	}
	var err error
	if f.CourseID, err = formID(c, "course_id"); err != nil {
		return f, err
	}
	if f.COID, err = formID(c, "co_id"); err != nil {
		return f, err
	}
	switch strings.ToLower(strings.TrimSpace(c.FormValue("save"))) {
	case "1", "true", "yes", "on":
		f.Save = true
	}
	if f.Save && f.CourseID == nil {
		return f, helper.NewFieldError("course_id", "Required when save is set.")
	}
	if f.Save && f.COID == nil {
		return f, helper.NewFieldError("co_id", "Required when save is set.")
	}
	return f, nil
}

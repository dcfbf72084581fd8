package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator reports fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate runs v.Struct and converts failures into ValidationErrors.
func Validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := ValidationErrors{}
	for _, fe := range ves {
		out[fe.Field()] = append(out[fe.Field()], messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + fe.Param() + "."
	case "max":
		return "Must be at most " + fe.Param() + "."
	case "gte":
		return "Must be greater than or equal to " + fe.Param() + "."
	case "lte":
		return "Must be less than or equal to " + fe.Param() + "."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	default:
		return "Failed on '" + fe.Tag() + "'."
	}
}

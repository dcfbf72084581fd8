package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FieldError names the request field at fault. Rendered as 400 {errors:{field:[msg]}}.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func MissingField(field string) *FieldError {
	return NewFieldError(field, "This field is required.")
}

func UnknownReference(field string, value any) *FieldError {
	return NewFieldError(field, fmt.Sprintf("No matching record for %v.", value))
}

// ValidationErrors is the multi-field variant produced by the validator.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for f, msgs := range v {
		parts = append(parts, f+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, ", ")
}

// IsUniqueViolation recognises Postgres 23505 and the SQLite/driver text forms.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") ||
		strings.Contains(low, "unique constraint")
}

// FromError renders any handler error in the standard envelope.
// Unclassified errors are 400 with the raw text.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return JsonValidationError(c, map[string][]string{fe.Field: {fe.Message}})
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve)
	}
	var fbe *fiber.Error
	if errors.As(err, &fbe) {
		return JsonError(c, fbe.Code, fbe.Message)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "Not found.")
	}
	if IsUniqueViolation(err) {
		return JsonError(c, fiber.StatusBadRequest, "A record with this value already exists.")
	}
	return JsonError(c, fiber.StatusBadRequest, err.Error())
}

// NotFound is a 404 *fiber.Error with the entity named.
func NotFound(entity string) error {
	return fiber.NewError(fiber.StatusNotFound, entity+" not found.")
}

// Duplicate is the field error for a unique column collision.
func Duplicate(entity, field string) *FieldError {
	return NewFieldError(field, entity+" with this "+strings.ReplaceAll(field, "_", " ")+" already exists.")
}

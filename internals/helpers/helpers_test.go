package helper_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	helper "copo_backend/internals/helpers"
)

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return helper.FromError(c, err) })
	res, e := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, e)
	defer res.Body.Close()
	raw, _ := io.ReadAll(res.Body)
	out := map[string]any{}
	require.NoError(t, sonic.Unmarshal(raw, &out))
	return res.StatusCode, out
}

func TestFromError(t *testing.T) {
	code, body := render(t, fmt.Errorf("wrapped: %w", helper.NewFieldError("name", "This field is required.")))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]any{"name": []any{"This field is required."}}, body["errors"])

	code, _ = render(t, helper.ValidationErrors{"code": {"x"}, "title": {"y"}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = render(t, fiber.NewError(http.StatusForbidden, "Admins only."))
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Admins only.", body["message"])

	code, _ = render(t, gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = render(t, &pgconn.PgError{Code: "23505"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "A record with this value already exists.", body["message"])

	code, body = render(t, errors.New("something odd"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, helper.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, helper.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, helper.IsUniqueViolation(errors.New("UNIQUE constraint failed: courses.code")))
	assert.True(t, helper.IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "students_register_no_key"`)))
	assert.False(t, helper.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, helper.IsUniqueViolation(errors.New("register_no must be unique per programme")))
	assert.False(t, helper.IsUniqueViolation(nil))
}

func TestPatchField(t *testing.T) {
	var req struct {
		Name  helper.PatchField[string] `json:"name"`
		Phone helper.PatchField[string] `json:"phone"`
		Age   helper.PatchField[int]    `json:"age"`
	}
	require.NoError(t, sonic.UnmarshalString(`{"name":"Ada","phone":null}`, &req))

	assert.True(t, req.Name.Set())
	assert.Equal(t, "Ada", *req.Name.Value)
	assert.True(t, req.Phone.Present)
	assert.False(t, req.Phone.Set())
	assert.False(t, req.Age.Present)

	assert.Error(t, sonic.UnmarshalString(`{"age":"old"}`, &req))
}

func TestValidateUsesJSONNames(t *testing.T) {
	type body struct {
		CourseCode string `json:"course_code" validate:"required"`
		Credits    int    `json:"credits" validate:"gte=0"`
	}
	err := helper.Validate(helper.NewValidator(), body{Credits: -1})
	var ve helper.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"This field is required."}, ve["course_code"])
	assert.Equal(t, []string{"Must be greater than or equal to 0."}, ve["credits"])

	assert.NoError(t, helper.Validate(helper.NewValidator(), body{CourseCode: "CS101"}))
}

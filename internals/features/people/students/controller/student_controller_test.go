package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/testutil"
)

func TestStudentAdmissionYear(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodPost, "/api/students", admin, map[string]any{
		"register_no": "na24ecor050", "name": "Katherine Johnson", "programme_id": tree.ProgrammeID,
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "na24ecor050", res.Data()["register_no"])
	assert.EqualValues(t, 2024, res.Data()["year_of_admission"])

	got := h.Do(http.MethodGet, testutil.Path("/api/students/", uint(res.Data()["id"].(float64))), admin, nil)
	require.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "na24ecor050", got.Data()["register_no"])

	res = h.Do(http.MethodPost, "/api/students", admin, map[string]any{
		"register_no": "X-1", "name": "No Year", "programme_id": tree.ProgrammeID,
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "year_of_admission")

	res = h.Do(http.MethodPost, "/api/students", admin, map[string]any{
		"register_no": "X-1", "name": "Explicit Year", "programme_id": tree.ProgrammeID, "year_of_admission": 2019,
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.EqualValues(t, 2019, res.Data()["year_of_admission"])
}

func TestStudentRegisterNoIsUnique(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)
	h.Student(admin, tree, "NA24ECOR001", "First")

	res := h.Do(http.MethodPost, "/api/students", admin, map[string]any{
		"register_no": "NA24ECOR001", "name": "Second", "programme_id": tree.ProgrammeID,
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "register_no")

	res = h.Do(http.MethodPost, "/api/students", admin, map[string]any{
		"register_no": "na24ecor001", "name": "Third", "programme_id": tree.ProgrammeID,
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "register_no")
}

func TestStudentUpdateAndListByProgramme(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)
	id := h.Student(admin, tree, "NA24ECOR001", "Grace")

	res := h.Do(http.MethodPut, testutil.Path("/api/students/", id), admin, map[string]any{"phone": "9123456780"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "9123456780", res.Data()["phone"])
	assert.Equal(t, "Grace", res.Data()["name"])

	res = h.Do(http.MethodPut, testutil.Path("/api/students/", id), admin, map[string]any{"phone": nil})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Nil(t, res.Data()["phone"])

	res = h.Do(http.MethodGet, testutil.Path("/api/programmes/", tree.ProgrammeID, "/students"), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	res = h.Do(http.MethodGet, "/api/programmes/999/students", admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/testutil"
)

func TestDepartmentCRUD(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()

	res := h.Do(http.MethodPost, "/api/departments", admin, map[string]any{"name": "  Physics  "})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "Physics", res.Data()["name"])
	id := testutil.ID(res.Data())

	res = h.Do(http.MethodPost, "/api/departments", admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "name")

	res = h.Do(http.MethodPost, "/api/departments", admin, map[string]any{"name": "Physics"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "name")

	res = h.Do(http.MethodPut, testutil.Path("/api/departments/", id), admin, map[string]any{"name": "Applied Physics"})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Applied Physics", res.Data()["name"])

	// an empty patch leaves the row alone
	res = h.Do(http.MethodPut, testutil.Path("/api/departments/", id), admin, map[string]any{})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Applied Physics", res.Data()["name"])

	res = h.Do(http.MethodGet, "/api/departments", admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	res = h.Do(http.MethodDelete, testutil.Path("/api/departments/", id), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)

	res = h.Do(http.MethodGet, testutil.Path("/api/departments/", id), admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
	res = h.Do(http.MethodDelete, testutil.Path("/api/departments/", id), admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestDepartmentWritesAreAdminOnly(t *testing.T) {
	h := testutil.New(t)
	teacher := h.TeacherToken()

	res := h.Do(http.MethodPost, "/api/departments", teacher, map[string]any{"name": "Chemistry"})
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = h.Do(http.MethodGet, "/api/departments", teacher, nil)
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestDepartmentDeleteCascades(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)
	h.Student(admin, tree, "NA24ECOR001", "Grace Hopper")
	h.Create("/api/cos", admin, map[string]any{
		"course_id": tree.CourseID, "label": "CO1", "description": "Write simple programs", "bloom_taxonomy": []string{"apply"},
	})

	res := h.Do(http.MethodDelete, testutil.Path("/api/departments/", tree.DepartmentID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	for _, table := range []string{"programmes", "courses", "faculty", "batches", "students", "course_outcomes"} {
		var n int64
		require.NoError(t, h.DB.Table(table).Count(&n).Error)
		assert.Zero(t, n, table)
	}
	var accounts int64
	h.DB.Table("users").Where("faculty_id IS NOT NULL").Count(&accounts)
	assert.Zero(t, accounts, "provisioned teacher account goes with the faculty row")

	// levels are not owned by a department
	var levels int64
	h.DB.Table("levels").Count(&levels)
	assert.EqualValues(t, 1, levels)
}

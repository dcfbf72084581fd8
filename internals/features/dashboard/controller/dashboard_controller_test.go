package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/features/dashboard/controller"
	"copo_backend/internals/testutil"
)

func TestDashboardStats(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()

	res := h.Do(http.MethodGet, "/api/dashboard-stats", admin, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	for _, k := range []string{"faculty", "courses", "batches", "students", "levels", "programmes"} {
		assert.EqualValues(t, 0, res.Data()[k], k)
	}

	tree := h.Academics(admin)
	h.Student(admin, tree, "NA24ECOR001", "Grace")
	h.Student(admin, tree, "NA24ECOR002", "Alan")

	res = h.Do(http.MethodGet, "/api/dashboard-stats", admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	d := res.Data()
	assert.EqualValues(t, 1, d["faculty"])
	assert.EqualValues(t, 1, d["courses"])
	assert.EqualValues(t, 1, d["batches"])
	assert.EqualValues(t, 2, d["students"])
	assert.EqualValues(t, 1, d["levels"])
	assert.EqualValues(t, 1, d["programmes"])

	stats, err := controller.Stats(h.DB)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Students)

	del := h.Do(http.MethodDelete, testutil.Path("/api/departments/", tree.DepartmentID), admin, nil)
	require.Equal(t, http.StatusOK, del.Status, string(del.Raw))

	res = h.Do(http.MethodGet, "/api/dashboard-stats", admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	d = res.Data()
	for _, k := range []string{"faculty", "courses", "batches", "students", "programmes"} {
		assert.EqualValues(t, 0, d[k], k)
	}
	assert.EqualValues(t, 1, d["levels"])
}

func TestDashboardAccess(t *testing.T) {
	h := testutil.New(t)
	res := h.Do(http.MethodGet, "/api/dashboard-stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = h.Do(http.MethodGet, "/api/dashboard-stats", h.TeacherToken(), nil)
	assert.Equal(t, http.StatusForbidden, res.Status)
}

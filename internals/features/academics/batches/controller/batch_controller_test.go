package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "copo_backend/internals/features/users/auth/model"
	"copo_backend/internals/testutil"
)

func TestBatchCreateDefaultsActive(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodGet, testutil.Path("/api/batches/", tree.BatchID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, true, res.Data()["active"])
	assert.Equal(t, "CS101", res.Data()["course_code"])
	assert.Equal(t, "Ada Lovelace", res.Data()["faculty_name"])

	res = h.Do(http.MethodPost, "/api/batches", admin, map[string]any{"faculty_id": tree.FacultyID, "part": "B"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "year")

	res = h.Do(http.MethodPost, "/api/batches", admin, map[string]any{"year": 2024, "part": "B"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "faculty")
}

func TestFacultyBatchesUsesLinkedAccount(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)
	h.Create("/api/internal-exams", admin, map[string]any{"batch_id": tree.BatchID, "name": "CIA 1", "max_marks": 50})

	var account authModel.UserModel
	require.NoError(t, h.DB.Where("faculty_id = ?", tree.FacultyID).First(&account).Error)
	token := h.TokenFor(account)

	res := h.Do(http.MethodGet, "/api/faculty-batches", token, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Len(t, res.List(), 1)

	res = h.Do(http.MethodGet, "/api/faculty-batches/exams", token, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	require.Len(t, res.List(), 1)
	exams := res.List()[0].(map[string]any)["internal_exams"].([]any)
	assert.Len(t, exams, 1)

	// admins have no faculty row
	res = h.Do(http.MethodGet, "/api/faculty-batches", admin, nil)
	assert.Equal(t, http.StatusForbidden, res.Status)
}

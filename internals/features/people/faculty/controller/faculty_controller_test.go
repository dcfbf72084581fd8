package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "copo_backend/internals/features/users/auth/model"
	"copo_backend/internals/testutil"
)

func TestFacultyCreateProvisionsAccount(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	dept := h.Create("/api/departments", admin, map[string]any{"name": "English"})

	res := h.Do(http.MethodPost, "/api/faculty", admin, map[string]any{
		"name": "Jane Austen", "department_id": dept, "email": " Jane.Austen@Uni.edu ", "phone": "9000000001",
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "jane.austen@uni.edu", res.Data()["email"])
	assert.Equal(t, "jane.austen", res.Data()["user_name"])

	var account authModel.UserModel
	require.NoError(t, h.DB.Where("email = ?", "jane.austen@uni.edu").First(&account).Error)
	assert.True(t, account.MustResetCredentials)
	assert.Equal(t, "teacher", account.Role)

	// the phone number is the first password
	login := h.Do(http.MethodPost, "/api/auth/token", "", map[string]any{"username": "jane.austen", "password": "9000000001"})
	require.Equal(t, http.StatusOK, login.Status, string(login.Raw))
	assert.Equal(t, true, login.Data()["is_first_login"])

	res = h.Do(http.MethodPost, "/api/faculty", admin, map[string]any{
		"name": "Someone Else", "department_id": dept, "email": "jane.austen@uni.edu",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "email")

	res = h.Do(http.MethodPost, "/api/faculty", admin, map[string]any{"name": "No Dept", "email": "nodept@uni.edu"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "department")
}

func TestFacultyUserNamesDoNotCollide(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	dept := h.Create("/api/departments", admin, map[string]any{"name": "History"})

	a := h.Do(http.MethodPost, "/api/faculty", admin, map[string]any{"name": "A", "department_id": dept, "email": "sam@one.edu"})
	b := h.Do(http.MethodPost, "/api/faculty", admin, map[string]any{"name": "B", "department_id": dept, "email": "sam@two.edu"})
	require.Equal(t, http.StatusCreated, a.Status)
	require.Equal(t, http.StatusCreated, b.Status)
	assert.NotEqual(t, a.Data()["user_name"], b.Data()["user_name"])
}

func TestFacultyEmailChangeFollowsAccount(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodPut, testutil.Path("/api/faculty/", tree.FacultyID), admin, map[string]any{"email": "ada.l@uni.edu"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "ada.l@uni.edu", res.Data()["email"])
	assert.Equal(t, "Ada Lovelace", res.Data()["name"])

	var account authModel.UserModel
	require.NoError(t, h.DB.Where("faculty_id = ?", tree.FacultyID).First(&account).Error)
	assert.Equal(t, "ada.l@uni.edu", account.Email)

	res = h.Do(http.MethodPut, testutil.Path("/api/faculty/", tree.FacultyID), admin, map[string]any{"email": "admin@copo.test"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestFacultyDeleteRemovesAccountAndBatches(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodDelete, testutil.Path("/api/faculty/", tree.FacultyID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	var batches, accounts int64
	h.DB.Table("batches").Count(&batches)
	h.DB.Model(&authModel.UserModel{}).Where("faculty_id = ?", tree.FacultyID).Count(&accounts)
	assert.Zero(t, batches)
	assert.Zero(t, accounts)

	var courses int64
	h.DB.Table("courses").Count(&courses)
	assert.EqualValues(t, 1, courses)
}

package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/testutil"
)

func TestCourseCodeIsUnique(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodPost, "/api/courses", admin, map[string]any{
		"code": "CS101", "title": "Again", "department_id": tree.DepartmentID, "programme_id": tree.ProgrammeID,
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "code")

	res = h.Do(http.MethodPost, "/api/courses", admin, map[string]any{
		"code": "CS102", "department_id": tree.DepartmentID, "programme_id": tree.ProgrammeID,
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "title")
}

func TestCourseUpdateAndLookup(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodPut, testutil.Path("/api/courses/", tree.CourseID), admin, map[string]any{"credits": 3, "syllabus_year": 2022})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 3, res.Data()["credits"])
	assert.EqualValues(t, 2022, res.Data()["syllabus_year"])
	assert.Equal(t, "Programming in C", res.Data()["title"])
	assert.Equal(t, "Computer Science", res.Data()["department_name"])

	res = h.Do(http.MethodPut, testutil.Path("/api/courses/", tree.CourseID), admin, map[string]any{"programme_id": 999})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodGet, testutil.Path("/api/courses?programme_id=", tree.ProgrammeID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	res = h.Do(http.MethodGet, "/api/courses/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestCourseDeleteRemovesBatchesAndOutcomes(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)
	coID := h.Create("/api/cos", admin, map[string]any{"course_id": tree.CourseID, "label": "CO1", "description": "Loops"})
	h.Create("/api/questions", admin, map[string]any{"course_id": tree.CourseID, "co_id": coID, "text": "Explain for loops", "marks": 2})
	h.Create("/api/internal-exams", admin, map[string]any{"batch_id": tree.BatchID, "name": "CIA 1", "max_marks": 50})

	res := h.Do(http.MethodDelete, testutil.Path("/api/courses/", tree.CourseID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	for _, table := range []string{"batches", "course_outcomes", "question_bank", "internal_exams"} {
		var n int64
		h.DB.Table(table).Count(&n)
		assert.Zero(t, n, table)
	}
}

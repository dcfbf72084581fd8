package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/testutil"
)

func TestAssessmentKinds(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	for _, kind := range []string{"external", "viva", "quiz", "assignment"} {
		t.Run(kind, func(t *testing.T) {
			res := h.Do(http.MethodPost, "/api/exams/"+kind, admin, map[string]any{"batch_id": tree.BatchID, "max_marks": 20})
			require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
			d := res.Data()
			assert.Equal(t, kind, d["kind"])
			assert.Equal(t, "CS101", d["course_code"])
			assert.EqualValues(t, 2024, d["year"])

			res = h.Do(http.MethodGet, testutil.Path("/api/exams/", kind, "?batch_id=", tree.BatchID), admin, nil)
			require.Equal(t, http.StatusOK, res.Status)
			assert.Len(t, res.List(), 1)
		})
	}
}

func TestAssessmentValidation(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodPost, "/api/exams/quiz", admin, map[string]any{"batch_id": tree.BatchID})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "max_marks")

	res = h.Do(http.MethodPost, "/api/exams/quiz", admin, map[string]any{"batch_id": tree.BatchID, "max_marks": 0})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodPost, "/api/exams/quiz", admin, map[string]any{"max_marks": 10})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "batch")

	res = h.Do(http.MethodGet, "/api/exams/seminar", admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)

	// internal exams have their own endpoint
	res = h.Do(http.MethodGet, "/api/exams/internal", admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestAssessmentUpdateAndDelete(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)
	exam := h.Create("/api/exams/viva", admin, map[string]any{"batch": tree.BatchID, "max_marks": 20})
	student := h.Student(admin, tree, "NA24ECOR010", "Alan")
	h.Create("/api/marks/viva", admin, map[string]any{"student_id": student, "exam_id": exam, "marks": 15})

	res := h.Do(http.MethodPut, testutil.Path("/api/exams/viva/", exam), admin, map[string]any{"max_marks": 25})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 25, res.Data()["max_marks"])

	res = h.Do(http.MethodGet, testutil.Path("/api/exams/quiz/", exam), admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Status, "ids are scoped to their kind")

	res = h.Do(http.MethodDelete, testutil.Path("/api/exams/viva/", exam), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	var n int64
	h.DB.Table("viva_marks").Count(&n)
	assert.Zero(t, n)
}

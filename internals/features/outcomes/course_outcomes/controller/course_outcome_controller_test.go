package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/testutil"
)

func TestCourseOutcomeBloomRoundTrip(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodPost, "/api/cos", admin, map[string]any{
		"course": "CS101", "label": "CO1", "description": "Trace programs",
		"bloom_taxonomy": []string{"create", "Apply", "apply"},
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, []any{"apply", "create"}, res.Data()["bloom_taxonomy"])
	assert.EqualValues(t, 1, res.Data()["apply"])
	assert.EqualValues(t, 0, res.Data()["remember"])
	assert.Equal(t, "CS101", res.Data()["course_code"])
	id := testutil.ID(res.Data())

	res = h.Do(http.MethodGet, testutil.Path("/api/cos/", id), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []any{"apply", "create"}, res.Data()["bloom_taxonomy"])

	// the mapping form toggles members
	res = h.Do(http.MethodPut, testutil.Path("/api/cos/", id), admin, map[string]any{
		"bloom_taxonomy": map[string]any{"remember": 1, "create": 0},
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, []any{"remember", "apply"}, res.Data()["bloom_taxonomy"])

	// so do the top-level flags
	res = h.Do(http.MethodPut, testutil.Path("/api/cos/", id), admin, map[string]any{"evaluate": 1})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []any{"remember", "apply", "evaluate"}, res.Data()["bloom_taxonomy"])

	// a list replaces the set
	res = h.Do(http.MethodPut, testutil.Path("/api/cos/", id), admin, map[string]any{"bloom_taxonomy": []string{"analyze"}})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []any{"analyze"}, res.Data()["bloom_taxonomy"])
	assert.Equal(t, "Trace programs", res.Data()["description"])

	res = h.Do(http.MethodGet, testutil.Path("/api/courses/", tree.CourseID, "/cos"), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)
}

func TestCourseOutcomeRejectsUnknownLevels(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	h.Academics(admin)

	res := h.Do(http.MethodPost, "/api/cos", admin, map[string]any{
		"course": "CS101", "label": "CO1", "description": "x", "bloom_taxonomy": []string{"apply", "memorise"},
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "bloom_taxonomy")

	id := h.Create("/api/cos", admin, map[string]any{"course": "CS101", "label": "CO2", "description": "y"})
	res = h.Do(http.MethodPut, testutil.Path("/api/cos/", id), admin, map[string]any{"bloom_taxonomy": map[string]any{"apply": 2}})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "bloom_taxonomy")

	res = h.Do(http.MethodPost, "/api/cos", admin, map[string]any{"course": "ZZ999", "label": "CO3", "description": "z"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "course")
}

func TestCourseOutcomeDeleteDropsQuestions(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)
	co := h.Create("/api/cos", admin, map[string]any{"course_id": tree.CourseID, "label": "CO1", "description": "x"})
	h.Create("/api/questions", admin, map[string]any{"course_id": tree.CourseID, "co_id": co, "text": "Q", "marks": 5})

	res := h.Do(http.MethodDelete, testutil.Path("/api/cos/", co), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)

	var n int64
	h.DB.Table("question_bank").Count(&n)
	assert.Zero(t, n)
}

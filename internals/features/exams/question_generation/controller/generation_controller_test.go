package controller_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/features/exams/question_generation/service"
	"copo_backend/internals/testutil"
	"copo_backend/internals/testutil/testpdf"
)

var notes = testpdf.Text("Pointers store memory addresses.", "Recursion calls itself.")

func drafts() []service.GeneratedQuestion {
	return []service.GeneratedQuestion{
		{Text: "What does a pointer store?", Marks: 2, BloomLevel: "remember"},
		{Text: "Trace a recursive factorial.", Marks: 5, BloomLevel: "apply"},
	}
}

func TestUploadPDFDraftsQuestions(t *testing.T) {
	h := testutil.New(t)
	h.Generator.Questions = drafts()

	res := h.Upload("/api/upload-pdf", h.TeacherToken(), "file", "notes.pdf", notes, map[string]string{"count": "2"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Len(t, res.Data()["questions"], 2)
	assert.EqualValues(t, 0, res.Data()["saved"])

	assert.Equal(t, 2, h.Generator.LastInput.Count)
	assert.Contains(t, h.Generator.LastInput.Text, "Pointers store memory addresses.")

	var n int64
	h.DB.Table("question_bank").Count(&n)
	assert.Zero(t, n)
}

func TestUploadPDFSavesToBank(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)
	co := h.Create("/api/cos", admin, map[string]any{"course_id": tree.CourseID, "label": "CO1", "description": "Basics"})
	h.Generator.Questions = drafts()

	res := h.Upload("/api/upload-pdf", admin, "file", "notes.pdf", notes, map[string]string{
		"save": "true", "course_id": testutil.Path(tree.CourseID), "co_id": testutil.Path(co), "marks": "3",
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 2, res.Data()["saved"])

	res = h.Do(http.MethodGet, testutil.Path("/api/questions/by-marks?course_id=", tree.CourseID, "&marks=3"), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 2)
}

func TestUploadPDFRejects(t *testing.T) {
	h := testutil.New(t)
	token := h.TeacherToken()

	res := h.Upload("/api/upload-pdf", token, "file", "notes.docx", []byte("PK"), nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "file")

	res = h.Upload("/api/upload-pdf", token, "file", "notes.pdf", notes, map[string]string{"count": "99"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "count")

	res = h.Upload("/api/upload-pdf", token, "file", "notes.pdf", notes, map[string]string{"save": "1"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "course_id")

	res = h.Upload("/api/upload-pdf", token, "file", "broken.pdf", []byte("%PDF-1.4\ngarbage"), nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	h.Generator.Err = service.ErrNotConfigured
	res = h.Upload("/api/upload-pdf", token, "file", "notes.pdf", notes, nil)
	assert.Equal(t, http.StatusInternalServerError, res.Status)

	h.Generator.Err = errors.New("upstream timeout")
	res = h.Upload("/api/upload-pdf", token, "file", "notes.pdf", notes, nil)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
}

package controller_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"copo_backend/internals/testutil"
)

type markFixture struct {
	testutil.Tree
	ExamID   uint
	Students []uint
}

func seed(t *testing.T, h *testutil.Harness, token string) markFixture {
	t.Helper()
	f := markFixture{Tree: h.Academics(token)}
	f.ExamID = h.Create("/api/exams/quiz", token, map[string]any{"batch_id": f.BatchID, "max_marks": 10})
	f.Students = []uint{
		h.Student(token, f.Tree, "NA24ECOR002", "Babbage"),
		h.Student(token, f.Tree, "NA24ECOR001", "Hopper"),
	}
	return f
}

func TestMarkUpsertReplaces(t *testing.T) {
	h := testutil.New(t)
	teacher := h.TeacherToken()
	f := seed(t, h, h.AdminToken())

	res := h.Do(http.MethodPost, "/api/marks/quiz", teacher, map[string]any{"student_id": f.Students[0], "exam_id": f.ExamID, "marks": 4})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	first := testutil.ID(res.Data())

	res = h.Do(http.MethodPost, "/api/marks/quiz", teacher, map[string]any{"register_no": "na24ecor002", "exam_id": f.ExamID, "marks": 9})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, first, testutil.ID(res.Data()))
	assert.EqualValues(t, 9, res.Data()["marks"])
	assert.Equal(t, "Babbage", res.Data()["student_name"])

	var n int64
	h.DB.Table("quiz_marks").Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestMarkValidation(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	f := seed(t, h, admin)

	res := h.Do(http.MethodPost, "/api/marks/quiz", admin, map[string]any{"student_id": f.Students[0], "exam_id": f.ExamID, "marks": 11})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, []any{"Must be between 0 and 10."}, res.Errors()["marks"])

	res = h.Do(http.MethodPost, "/api/marks/quiz", admin, map[string]any{"student_id": f.Students[0], "exam_id": f.ExamID, "marks": -1})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodPost, "/api/marks/quiz", admin, map[string]any{"student_id": 999, "exam_id": f.ExamID, "marks": 5})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "student_id")

	res = h.Do(http.MethodPost, "/api/marks/viva", admin, map[string]any{"student_id": f.Students[0], "exam_id": f.ExamID, "marks": 5})
	assert.Equal(t, http.StatusBadRequest, res.Status, "the exam belongs to another kind")
	assert.Contains(t, res.Errors(), "exam_id")

	res = h.Do(http.MethodPost, "/api/marks/quiz", admin, map[string]any{"student_id": f.Students[0], "marks": 5})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "exam_id")

	res = h.Do(http.MethodGet, "/api/marks/seminar", admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestMarkUpdate(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	f := seed(t, h, admin)
	id := h.Create("/api/marks/quiz", admin, map[string]any{"student_id": f.Students[1], "exam_id": f.ExamID, "marks": 3})

	res := h.Do(http.MethodPut, testutil.Path("/api/marks/quiz/", id), admin, map[string]any{"marks": 8})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 8, res.Data()["marks"])

	res = h.Do(http.MethodPut, testutil.Path("/api/marks/quiz/", id), admin, map[string]any{"marks": 80})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodPut, testutil.Path("/api/marks/quiz/", id), admin, map[string]any{"marks": nil})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodDelete, testutil.Path("/api/marks/quiz/", id), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	res = h.Do(http.MethodDelete, testutil.Path("/api/marks/quiz/", id), admin, nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestBulkMarksAllOrNothing(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	f := seed(t, h, admin)

	res := h.Do(http.MethodPost, "/api/marks/quiz/bulk", admin, map[string]any{
		"exam_id": f.ExamID,
		"marks": []map[string]any{
			{"student_id": f.Students[0], "marks": 5},
			{"register_no": "NA24ECOR001", "marks": 12},
		},
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "marks[1].marks")
	var n int64
	h.DB.Table("quiz_marks").Count(&n)
	assert.Zero(t, n)

	res = h.Do(http.MethodPost, "/api/marks/quiz/bulk", admin, map[string]any{
		"exam_id": f.ExamID,
		"marks": []map[string]any{
			{"student_id": f.Students[0], "marks": 5},
			{"register_no": "NA24ECOR001", "marks": 7},
		},
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	rows := res.List()
	require.Len(t, rows, 2)
	assert.Equal(t, "NA24ECOR001", rows[0].(map[string]any)["register_no"])

	res = h.Do(http.MethodGet, testutil.Path("/api/marks/quiz?exam_id=", f.ExamID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 2)
}

func TestMarkExport(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	f := seed(t, h, admin)
	h.Create("/api/marks/quiz", admin, map[string]any{"student_id": f.Students[0], "exam_id": f.ExamID, "marks": 6})

	res := h.Do(http.MethodGet, "/api/marks/quiz/export", admin, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodGet, testutil.Path("/api/marks/quiz/export?exam_id=", f.ExamID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Contains(t, res.Header.Get("Content-Disposition"), "quiz_marks_")

	book, err := excelize.OpenReader(bytes.NewReader(res.Raw))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("Marks")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Register No", "Name", "Marks", "Max Marks"}, rows[0])
	assert.Equal(t, []string{"NA24ECOR002", "Babbage", "6", "10"}, rows[1])
}

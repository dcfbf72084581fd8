package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/testutil"
)

type examFixture struct {
	testutil.Tree
	ExamID    uint
	SectionID uint
	Questions []uint
}

func composeFixture(t *testing.T, h *testutil.Harness, token string) examFixture {
	t.Helper()
	f := examFixture{Tree: h.Academics(token)}
	co := h.Create("/api/cos", token, map[string]any{"course_id": f.CourseID, "label": "CO1", "description": "Basics"})
	for _, text := range []string{"Define a pointer.", "What is recursion?", "Explain arrays.", "Write a loop."} {
		f.Questions = append(f.Questions, h.Create("/api/questions", token, map[string]any{
			"course_id": f.CourseID, "co_id": co, "text": text, "marks": 2,
		}))
	}
	f.ExamID = h.Create("/api/internal-exams", token, map[string]any{
		"batch_id": f.BatchID, "name": "CIA 1", "max_marks": 50, "duration": 90, "exam_date": "2024-09-12",
	})
	f.SectionID = h.Create(testutil.Path("/api/internal-exams/", f.ExamID, "/sections"), token, map[string]any{
		"name": "Part A", "question_count": 5, "answer_count": 5, "ceiling_mark": 10,
	})
	return f
}

func TestInternalExamCreateValidation(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	tree := h.Academics(admin)

	res := h.Do(http.MethodPost, "/api/internal-exams", admin, map[string]any{"batch_id": tree.BatchID, "name": "CIA"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "max_marks")

	res = h.Do(http.MethodPost, "/api/internal-exams", admin, map[string]any{"batch_id": 999, "name": "CIA", "max_marks": 50})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "batch")

	res = h.Do(http.MethodPost, "/api/internal-exams", admin, map[string]any{"batch_id": tree.BatchID, "name": "CIA", "max_marks": 50, "exam_date": "12/09/2024"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "exam_date")
}

func TestSectionAnswerCountCannotExceedQuestions(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	f := composeFixture(t, h, admin)

	res := h.Do(http.MethodPost, testutil.Path("/api/internal-exams/", f.ExamID, "/sections"), admin, map[string]any{
		"name": "Part B", "question_count": 2, "answer_count": 3,
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodPut, testutil.Path("/api/exam-sections/", f.SectionID), admin, map[string]any{"answer_count": 3})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 3, res.Data()["answer_count"])
	assert.Equal(t, "Part A", res.Data()["name"])
}

func TestSectionQuestionSync(t *testing.T) {
	h := testutil.New(t)
	teacher := h.TeacherToken()
	f := composeFixture(t, h, h.AdminToken())
	q := f.Questions
	path := testutil.Path("/api/exam-sections/", f.SectionID, "/questions")

	res := h.Do(http.MethodPut, path, teacher, map[string]any{"question_ids": []uint{q[0], q[1], q[2]}})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 3, res.Data()["added"])

	res = h.Do(http.MethodPut, path, teacher, map[string]any{"question_ids": []uint{q[1], q[2], q[3]}})
	require.Equal(t, http.StatusOK, res.Status)
	assert.EqualValues(t, 1, res.Data()["added"])
	assert.EqualValues(t, 1, res.Data()["removed"])

	res = h.Do(http.MethodPut, path, teacher, map[string]any{"question_ids": []uint{q[1], q[2], q[3]}})
	require.Equal(t, http.StatusOK, res.Status)
	assert.EqualValues(t, 0, res.Data()["added"])
	assert.EqualValues(t, 0, res.Data()["removed"])
	questions := res.Data()["questions"].([]any)
	require.Len(t, questions, 3)
	assert.Equal(t, "Q1", questions[0].(map[string]any)["number"])
	assert.Equal(t, "CO1", questions[0].(map[string]any)["co_label"])

	res = h.Do(http.MethodPut, path, teacher, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "question_ids")

	res = h.Do(http.MethodPost, path, teacher, map[string]any{"question_ids": []uint{q[0], q[1]}})
	require.Equal(t, http.StatusOK, res.Status)
	assert.EqualValues(t, 1, res.Data()["added"])

	res = h.Do(http.MethodPut, testutil.Path("/api/exam-sections/999/questions"), teacher, map[string]any{"question_ids": []uint{q[0]}})
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestInternalExamDetails(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	f := composeFixture(t, h, admin)
	h.Do(http.MethodPut, testutil.Path("/api/exam-sections/", f.SectionID, "/questions"), admin, map[string]any{"question_ids": f.Questions[:2]})

	res := h.Do(http.MethodGet, testutil.Path("/api/internal-exams/", f.ExamID, "/details"), admin, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	d := res.Data()
	assert.Equal(t, "CS101", d["course_code"])
	assert.Equal(t, "B.Sc Computer Science", d["programme_name"])
	sections := d["sections"].([]any)
	require.Len(t, sections, 1)
	assert.Len(t, sections[0].(map[string]any)["questions"], 2)
}

func TestInternalExamDeleteCascades(t *testing.T) {
	h := testutil.New(t)
	admin := h.AdminToken()
	f := composeFixture(t, h, admin)
	h.Do(http.MethodPut, testutil.Path("/api/exam-sections/", f.SectionID, "/questions"), admin, map[string]any{"question_ids": f.Questions})
	student := h.Student(admin, f.Tree, "NA24ECOR001", "Grace")
	h.Create("/api/marks/internal", admin, map[string]any{"student_id": student, "exam_id": f.ExamID, "marks": 40})

	res := h.Do(http.MethodDelete, testutil.Path("/api/internal-exams/", f.ExamID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	for _, table := range []string{"exam_sections", "exam_questions", "internal_marks"} {
		var n int64
		h.DB.Table(table).Count(&n)
		assert.Zero(t, n, table)
	}
	var bank int64
	h.DB.Table("question_bank").Count(&bank)
	assert.EqualValues(t, 4, bank, "the question bank is not owned by the exam")
}

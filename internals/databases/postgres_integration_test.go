//go:build integration

package database_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/testutil"
	"copo_backend/internals/testutil/testdb"
)

func TestMigrationsCreateSchema(t *testing.T) {
	db := testdb.Postgres(t)

	var version int64
	require.NoError(t, db.Raw("SELECT MAX(version_id) FROM goose_db_version").Scan(&version).Error)
	assert.EqualValues(t, 1, version)

	for _, table := range []string{
		"departments", "levels", "programmes", "courses", "faculty", "users", "batches", "students",
		"course_outcomes", "program_outcomes", "program_specific_outcomes",
		"internal_exams", "exam_sections", "exam_questions", "question_bank", "quiz_marks", "internal_marks",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestAcademicFlowOnPostgres(t *testing.T) {
	h := testutil.New(t, testutil.WithDB(testdb.Postgres(t)))
	admin := h.AdminToken()
	tree := h.Academics(admin)
	student := h.Student(admin, tree, "NA24ECOR001", "Grace")

	res := h.Do(http.MethodPost, "/api/cos", admin, map[string]any{
		"course_id": tree.CourseID, "label": "CO1", "description": "Basics", "bloom_taxonomy": []string{"create", "remember"},
	})
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, []any{"remember", "create"}, res.Data()["bloom_taxonomy"])
	co := testutil.ID(res.Data())

	q := h.Create("/api/questions", admin, map[string]any{"course_id": tree.CourseID, "co_id": co, "text": "Define a pointer.", "marks": 2})
	exam := h.Create("/api/internal-exams", admin, map[string]any{"batch_id": tree.BatchID, "name": "CIA 1", "max_marks": 50})
	section := h.Create(testutil.Path("/api/internal-exams/", exam, "/sections"), admin, map[string]any{"name": "Part A", "question_count": 1, "answer_count": 1})

	res = h.Do(http.MethodPut, testutil.Path("/api/exam-sections/", section, "/questions"), admin, map[string]any{"question_ids": []uint{q}})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.EqualValues(t, 1, res.Data()["added"])

	for _, marks := range []int{30, 42} {
		res = h.Do(http.MethodPost, "/api/marks/internal", admin, map[string]any{"student_id": student, "exam_id": exam, "marks": marks})
		require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	}
	assert.EqualValues(t, 42, res.Data()["marks"])

	res = h.Do(http.MethodPost, "/api/departments", admin, map[string]any{"name": "Computer Science"})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodDelete, testutil.Path("/api/departments/", tree.DepartmentID), admin, nil)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	for _, table := range []string{"programmes", "courses", "faculty", "students", "internal_exams", "internal_marks", "question_bank"} {
		var n int64
		require.NoError(t, h.DB.Table(table).Count(&n).Error)
		assert.Zero(t, n, table)
	}
}

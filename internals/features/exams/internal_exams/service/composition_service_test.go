package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	batchModel "copo_backend/internals/features/academics/batches/model"
	"copo_backend/internals/features/exams/internal_exams/model"
	"copo_backend/internals/features/exams/internal_exams/service"
	questionModel "copo_backend/internals/features/exams/question_bank/model"
	helper "copo_backend/internals/helpers"
	"copo_backend/internals/testutil/testdb"
)

func seedSection(t *testing.T, db *gorm.DB, questions int) (uint, []uint) {
	t.Helper()
	exam := model.InternalExamModel{BatchID: 1, Name: "CIA 1", MaxMarks: 50}
	require.NoError(t, db.Create(&exam).Error)
	section := model.ExamSectionModel{InternalExamID: exam.ID, Name: "Part A", QuestionCount: 5, AnswerCount: 5, CeilingMark: 10}
	require.NoError(t, db.Create(&section).Error)

	ids := make([]uint, 0, questions)
	for i := 0; i < questions; i++ {
		q := questionModel.QuestionModel{Text: "Question", Marks: 2}
		require.NoError(t, db.Create(&q).Error)
		ids = append(ids, q.ID)
	}
	return section.ID, ids
}

func sync(t *testing.T, db *gorm.DB, section uint, ids []uint) service.SyncResult {
	t.Helper()
	var res service.SyncResult
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = service.Sync(tx, section, ids)
		return err
	}))
	return res
}

func TestSyncReachesTargetAndIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	section, q := seedSection(t, db, 4)

	res := sync(t, db, section, []uint{q[0], q[1], q[2]})
	assert.Equal(t, 3, res.Added)
	assert.Equal(t, 0, res.Removed)

	res = sync(t, db, section, []uint{q[1], q[2], q[3]})
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
	assert.ElementsMatch(t, []uint{q[1], q[2], q[3]}, res.Current)

	var before []model.ExamQuestionModel
	require.NoError(t, db.Order("id").Find(&before).Error)

	res = sync(t, db, section, []uint{q[3], q[2], q[1], q[1]})
	assert.Zero(t, res.Added)
	assert.Zero(t, res.Removed)

	var after []model.ExamQuestionModel
	require.NoError(t, db.Order("id").Find(&after).Error)
	assert.Equal(t, before, after, "a repeated sync leaves the rows untouched")

	res = sync(t, db, section, []uint{})
	assert.Equal(t, 3, res.Removed)
	assert.Empty(t, res.Current)
}

func TestSyncRejectsUnknownQuestions(t *testing.T) {
	db := testdb.New(t)
	section, q := seedSection(t, db, 1)
	sync(t, db, section, []uint{q[0]})

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := service.Sync(tx, section, []uint{q[0], 9001, 9000})
		return err
	})
	var fe *helper.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "question_ids", fe.Field)
	assert.Contains(t, fe.Message, "[9000 9001]")

	var n int64
	db.Model(&model.ExamQuestionModel{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestAddSkipsPlacedQuestions(t *testing.T) {
	db := testdb.New(t)
	section, q := seedSection(t, db, 3)
	sync(t, db, section, []uint{q[0]})

	var res service.SyncResult
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = service.Add(tx, section, []uint{q[0], q[1], q[2]})
		return err
	}))
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, []uint{q[0], q[1], q[2]}, res.Current)

	list, err := service.ListQuestions(db, section)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Q1", list[0].Number)
	assert.Equal(t, "Q3", list[2].Number)
}

func TestSyncUnknownSection(t *testing.T) {
	db := testdb.New(t)
	_, err := service.Sync(db, 404, []uint{1})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDetailsNestsSectionsAndQuestions(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, db.Create(&batchModel.BatchModel{FacultyID: 1, Year: 2024, Part: "A"}).Error)
	section, q := seedSection(t, db, 2)
	sync(t, db, section, []uint{q[1], q[0]})

	var exam model.ExamSectionModel
	require.NoError(t, db.First(&exam, section).Error)

	d, err := service.Details(db, exam.InternalExamID)
	require.NoError(t, err)
	assert.Equal(t, "CIA 1", d.Name)
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, "A", d.Part)
	assert.Nil(t, d.CourseCode)
	require.Len(t, d.Sections, 1)
	assert.Equal(t, "Part A", d.Sections[0].Name)
	require.Len(t, d.Sections[0].Questions, 2)
	assert.Equal(t, "Q1", d.Sections[0].Questions[0].Number)
	assert.Equal(t, q[1], d.Sections[0].Questions[0].QuestionID)

	_, err = service.Details(db, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

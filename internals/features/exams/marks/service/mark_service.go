package service

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"copo_backend/internals/constants"
	"copo_backend/internals/features/exams/marks/dto"
	"copo_backend/internals/features/exams/marks/model"
	helper "copo_backend/internals/helpers"
)

// MaxMarks returns the ceiling of exam id in kind's exam table.
func MaxMarks(tx *gorm.DB, k constants.ExamKind, examID uint) (int, error) {
	var ceiling []int
	if err := tx.Table(k.ExamTable).Where("id = ?", examID).Limit(1).Pluck("max_marks", &ceiling).Error; err != nil {
		return 0, err
	}
	if len(ceiling) == 0 {
		return 0, helper.UnknownReference("exam_id", examID)
	}
	return ceiling[0], nil
}

func CheckRange(marks, ceiling int) error {
	if marks < 0 || marks > ceiling {
		return helper.NewFieldError("marks", fmt.Sprintf("Must be between 0 and %d.", ceiling))
	}
	return nil
}

// Upsert writes the (student, exam) mark, replacing an earlier value.
func Upsert(tx *gorm.DB, k constants.ExamKind, studentID, examID uint, marks int) error {
	m := model.MarkModel{StudentID: studentID, ExamID: examID, Marks: marks}
	return tx.Table(k.MarkTable).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "exam_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"marks", "updated_at"}),
	}).Create(&m).Error
}

func Query(db *gorm.DB, k constants.ExamKind) *gorm.DB {
	return db.Table(k.MarkTable + " AS m").
		Select(`m.id, m.student_id, s.register_no, s.name AS student_name, m.exam_id, m.marks`).
		Joins("LEFT JOIN students s ON s.id = m.student_id")
}

func Rows(q *gorm.DB, k constants.ExamKind) ([]dto.MarkResponse, error) {
	rows := []dto.MarkResponse{}
	if err := q.Order("s.register_no ASC, m.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Kind = k.Name
	}
	return rows, nil
}

func Load(db *gorm.DB, k constants.ExamKind, studentID, examID uint) (dto.MarkResponse, error) {
	rows, err := Rows(Query(db, k).Where("m.student_id = ? AND m.exam_id = ?", studentID, examID), k)
	if err != nil {
		return dto.MarkResponse{}, err
	}
	if len(rows) == 0 {
		return dto.MarkResponse{}, gorm.ErrRecordNotFound
	}
	return rows[0], nil
}

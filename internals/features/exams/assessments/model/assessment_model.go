package model

import "time"

// AssessmentModel backs external exams, vivas, quizzes and assignments.
// It has no TableName: callers pick the table through constants.ExamKind.
type AssessmentModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BatchID   uint      `gorm:"column:batch_id;not null" json:"batch_id"`
	MaxMarks  int       `gorm:"column:max_marks;not null" json:"max_marks"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

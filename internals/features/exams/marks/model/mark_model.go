package model

import "time"

// MarkModel is shared by every *_marks table; the table comes from constants.ExamKind.
// Indexes are per table (see database.AutoMigrate), so none are declared here.
type MarkModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StudentID uint      `gorm:"column:student_id;not null" json:"student_id"`
	ExamID    uint      `gorm:"column:exam_id;not null" json:"exam_id"`
	Marks     int       `gorm:"column:marks;not null" json:"marks"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

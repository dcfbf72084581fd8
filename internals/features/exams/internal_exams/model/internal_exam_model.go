package model

import "time"

type InternalExamModel struct {
	ID        uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BatchID   uint       `gorm:"column:batch_id;not null;index" json:"batch_id"`
	Name      string     `gorm:"column:name;type:varchar(120);not null" json:"name"`
	Duration  int        `gorm:"column:duration;not null;default:0" json:"duration"`
	MaxMarks  int        `gorm:"column:max_marks;not null" json:"max_marks"`
	ExamDate  *time.Time `gorm:"column:exam_date" json:"exam_date"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InternalExamModel) TableName() string { return "internal_exams" }

package model

import "time"

type QuestionModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CourseID  uint      `gorm:"column:course_id;not null;index" json:"course_id"`
	COID      uint      `gorm:"column:co_id;not null;index" json:"co_id"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	Marks     int       `gorm:"column:marks;not null" json:"marks"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (QuestionModel) TableName() string { return "question_bank" }

package model

import "time"

type ExamSectionModel struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	InternalExamID uint      `gorm:"column:internal_exam_id;not null;index" json:"internal_exam_id"`
	Name           string    `gorm:"column:name;type:varchar(80);not null" json:"name"`
	QuestionCount  int       `gorm:"column:question_count;not null" json:"question_count"`
	AnswerCount    int       `gorm:"column:answer_count;not null" json:"answer_count"`
	CeilingMark    int       `gorm:"column:ceiling_mark;not null;default:0" json:"ceiling_mark"`
	Description    *string   `gorm:"column:description;type:text" json:"description"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ExamSectionModel) TableName() string { return "exam_sections" }

// ExamQuestionModel places a question-bank entry into a section.
type ExamQuestionModel struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SectionID  uint      `gorm:"column:section_id;not null;uniqueIndex:uq_exam_questions_section_question,priority:1" json:"section_id"`
	QuestionID uint      `gorm:"column:question_id;not null;uniqueIndex:uq_exam_questions_section_question,priority:2;index" json:"question_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ExamQuestionModel) TableName() string { return "exam_questions" }

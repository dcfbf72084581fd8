package model

import "time"

type CourseModel struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code         string    `gorm:"column:code;type:varchar(40);not null;uniqueIndex:uq_courses_code" json:"code"`
	Title        string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	DepartmentID uint      `gorm:"column:department_id;not null;index" json:"department_id"`
	ProgrammeID  uint      `gorm:"column:programme_id;not null;index" json:"programme_id"`
	Semester     int       `gorm:"column:semester;not null;default:0" json:"semester"`
	Credits      int       `gorm:"column:credits;not null;default:0" json:"credits"`
	OutcomeCount int       `gorm:"column:outcome_count;not null;default:0" json:"outcome_count"`
	SyllabusYear int       `gorm:"column:syllabus_year;not null;default:0" json:"syllabus_year"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

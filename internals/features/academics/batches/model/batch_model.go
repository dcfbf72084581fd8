package model

import "time"

// A course offering to a group of students in a given year/part, taught by one faculty member.
type BatchModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CourseID  *uint     `gorm:"column:course_id;index" json:"course_id"`
	FacultyID uint      `gorm:"column:faculty_id;not null;index" json:"faculty_id"`
	Year      int       `gorm:"column:year;not null" json:"year"`
	Part      string    `gorm:"column:part;type:varchar(20);not null" json:"part"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BatchModel) TableName() string { return "batches" }

package model

import "time"

type FacultyModel struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(150);not null" json:"name"`
	DepartmentID uint      `gorm:"column:department_id;not null;index" json:"department_id"`
	Email        string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex:uq_faculty_email" json:"email"`
	Phone        string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FacultyModel) TableName() string { return "faculty" }

package model

import "time"

type ProgrammeModel struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(150);not null;uniqueIndex:uq_programmes_name" json:"name"`
	DepartmentID uint      `gorm:"column:department_id;not null;index" json:"department_id"`
	LevelID      uint      `gorm:"column:level_id;not null;index" json:"level_id"`
	OutcomeCount int       `gorm:"column:outcome_count;not null;default:0" json:"outcome_count"`
	Duration     int       `gorm:"column:duration;not null;default:0" json:"duration"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProgrammeModel) TableName() string { return "programmes" }

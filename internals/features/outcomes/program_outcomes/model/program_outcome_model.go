package model

import "time"

type ProgramOutcomeModel struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Label       string    `gorm:"column:label;type:varchar(40);not null" json:"label"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	LevelID     uint      `gorm:"column:level_id;not null;index" json:"level_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProgramOutcomeModel) TableName() string { return "program_outcomes" }

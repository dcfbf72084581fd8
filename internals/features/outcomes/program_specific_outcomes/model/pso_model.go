package model

import "time"

type ProgramSpecificOutcomeModel struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProgrammeID uint      `gorm:"column:programme_id;not null;uniqueIndex:uq_pso_programme_label,priority:1" json:"programme_id"`
	Label       string    `gorm:"column:label;type:varchar(40);not null;uniqueIndex:uq_pso_programme_label,priority:2" json:"label"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ProgramSpecificOutcomeModel) TableName() string { return "program_specific_outcomes" }

package model

import "time"

// Qualification level (UG, PG, ...). Program outcomes hang off a level.
type LevelModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(80);not null;uniqueIndex:uq_levels_name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LevelModel) TableName() string { return "levels" }

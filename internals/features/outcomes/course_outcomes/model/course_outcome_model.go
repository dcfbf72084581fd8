package model

import (
	"time"

	"gorm.io/datatypes"
)

type CourseOutcomeModel struct {
	ID            uint                               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CourseID      *uint                              `gorm:"column:course_id;index" json:"course_id"`
	Label         string                             `gorm:"column:label;type:varchar(40);not null" json:"label"`
	Description   string                             `gorm:"column:description;type:text;not null" json:"description"`
	BloomTaxonomy datatypes.JSONSlice[TaxonomyLevel] `gorm:"column:bloom_taxonomy" json:"bloom_taxonomy"`
	CreatedAt     time.Time                          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CourseOutcomeModel) TableName() string { return "course_outcomes" }

func (m CourseOutcomeModel) Taxonomy() TaxonomySet { return TaxonomySet(m.BloomTaxonomy) }

func (m *CourseOutcomeModel) SetTaxonomy(s TaxonomySet) {
	m.BloomTaxonomy = datatypes.JSONSlice[TaxonomyLevel](s)
}

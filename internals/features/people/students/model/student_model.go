package model

import (
	"strconv"
	"strings"
	"time"
)

type StudentModel struct {
	ID              uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RegisterNo      string    `gorm:"column:register_no;type:varchar(40);not null;uniqueIndex:uq_students_register_no" json:"register_no"`
	Name            string    `gorm:"column:name;type:varchar(150);not null" json:"name"`
	ProgrammeID     uint      `gorm:"column:programme_id;not null;index" json:"programme_id"`
	YearOfAdmission int       `gorm:"column:year_of_admission;not null;default:0" json:"year_of_admission"`
	Phone           *string   `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Email           *string   `gorm:"column:email;type:varchar(254)" json:"email"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StudentModel) TableName() string { return "students" }

// AdmissionYear reads the two-digit year at positions 2:4 of a register number,
// e.g. "NA24ECOR050" -> 2024. ok is false when those characters are not digits.
func AdmissionYear(registerNo string) (year int, ok bool) {
	r := strings.TrimSpace(registerNo)
	if len(r) < 4 {
		return 0, false
	}
	for _, ch := range r[2:4] {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	yy, err := strconv.Atoi(r[2:4])
	if err != nil {
		return 0, false
	}
	return 2000 + yy, true
}

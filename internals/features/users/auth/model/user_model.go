package model

import "time"

// UserModel is a login account. Teacher accounts link to exactly one faculty row.
type UserModel struct {
	ID                   uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserName             string    `gorm:"column:user_name;type:varchar(150);not null;uniqueIndex:uq_users_user_name" json:"user_name"`
	Email                string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex:uq_users_email" json:"email"`
	Password             string    `gorm:"column:password;not null" json:"-"`
	Role                 string    `gorm:"column:role;type:varchar(20);not null;default:teacher" json:"role"`
	MustResetCredentials bool      `gorm:"column:must_reset_credentials;not null;default:false" json:"must_reset_credentials"`
	IsActive             bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	FacultyID            *uint     `gorm:"column:faculty_id;index" json:"faculty_id"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

package model

import "time"

type TokenBlacklistModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Token     string    `gorm:"column:token;type:text;not null;uniqueIndex:uq_token_blacklist_token" json:"token"`
	ExpiredAt time.Time `gorm:"column:expired_at;not null;index" json:"expired_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }

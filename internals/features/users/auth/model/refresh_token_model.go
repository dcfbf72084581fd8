package model

import "time"

type RefreshTokenModel struct {
	ID     uint `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"column:user_id;not null;index" json:"user_id"`

	// HMAC of the token, never the plaintext
	TokenHash []byte `gorm:"column:token_hash;not null;uniqueIndex:uq_refresh_tokens_hash" json:"-"`

	ExpiresAt time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	UserAgent *string    `gorm:"column:user_agent" json:"user_agent,omitempty"`
	IP        *string    `gorm:"column:ip" json:"ip,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }

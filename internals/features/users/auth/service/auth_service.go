package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	authModel "copo_backend/internals/features/users/auth/model"
)

var (
	ErrBadCredentials  = errors.New("Invalid username or password.")
	ErrInactiveAccount = errors.New("This account has been deactivated.")
	ErrRefreshRevoked  = errors.New("Refresh token has been revoked or expired.")
	ErrAlreadyReset    = errors.New("Credentials have already been reset.")
)

type TokenPair struct {
	Access           string
	AccessExpiresAt  time.Time
	Refresh          string
	RefreshExpiresAt time.Time
}

// ClientMeta is stored beside refresh tokens.
type ClientMeta struct {
	UserAgent string
	IP        string
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Authenticate matches identifier against user_name or email.
func Authenticate(db *gorm.DB, identifier, password string) (*authModel.UserModel, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrBadCredentials
	}
	var u authModel.UserModel
	err := db.Where("user_name = ? OR LOWER(email) = ?", identifier, strings.ToLower(identifier)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if CheckPasswordHash(u.Password, password) != nil {
		return nil, ErrBadCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}
	return &u, nil
}

// IssuePair signs both tokens and records the refresh hash.
func (t TokenIssuer) IssuePair(db *gorm.DB, u authModel.UserModel, meta ClientMeta) (TokenPair, error) {
	access, accessExp, err := t.IssueAccess(u)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, err := t.IssueRefresh(u)
	if err != nil {
		return TokenPair{}, err
	}
	row := authModel.RefreshTokenModel{
		UserID:    u.ID,
		TokenHash: t.RefreshHash(refresh),
		ExpiresAt: refreshExp,
		UserAgent: strPtr(meta.UserAgent),
		IP:        strPtr(meta.IP),
	}
	if err := db.Create(&row).Error; err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, AccessExpiresAt: accessExp, Refresh: refresh, RefreshExpiresAt: refreshExp}, nil
}

// Rotate revokes the presented refresh token and issues a new pair.
func (t TokenIssuer) Rotate(db *gorm.DB, raw string, meta ClientMeta) (TokenPair, *authModel.UserModel, error) {
	claims, err := t.ParseRefresh(raw)
	if err != nil {
		return TokenPair{}, nil, err
	}
	uid, err := claims.UserID()
	if err != nil {
		return TokenPair{}, nil, err
	}

	var (
		pair TokenPair
		user authModel.UserModel
	)
	err = db.Transaction(func(tx *gorm.DB) error {
		now := t.now()
		res := tx.Model(&authModel.RefreshTokenModel{}).
			Where("token_hash = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?", t.RefreshHash(raw), uid, now).
			Update("revoked_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRefreshRevoked
		}
		if err := tx.First(&user, uid).Error; err != nil {
			return err
		}
		if !user.IsActive {
			return ErrInactiveAccount
		}
		pair, err = t.IssuePair(tx, user, meta)
		return err
	})
	if err != nil {
		return TokenPair{}, nil, err
	}
	return pair, &user, nil
}

// Logout blacklists the access token until its expiry and revokes the refresh token if given.
func (t TokenIssuer) Logout(db *gorm.DB, access, refresh string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if access != "" {
			exp := t.now().Add(t.AccessTTL)
			if claims, err := t.ParseAccess(access); err == nil && claims.ExpiresAt != nil {
				exp = claims.ExpiresAt.Time
			}
			var n int64
			if err := tx.Model(&authModel.TokenBlacklistModel{}).Where("token = ?", access).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				if err := tx.Create(&authModel.TokenBlacklistModel{Token: access, ExpiredAt: exp}).Error; err != nil {
					return err
				}
			}
		}
		if refresh != "" {
			if err := tx.Model(&authModel.RefreshTokenModel{}).
				Where("token_hash = ? AND revoked_at IS NULL", t.RefreshHash(refresh)).
				Update("revoked_at", t.now()).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func IsBlacklisted(db *gorm.DB, token string) (bool, error) {
	var n int64
	err := db.Model(&authModel.TokenBlacklistModel{}).Where("token = ?", token).Count(&n).Error
	return n > 0, err
}

// ResetCredentials is allowed once, while must_reset_credentials is set.
func ResetCredentials(db *gorm.DB, userID uint, newUserName, newPassword string) (*authModel.UserModel, error) {
	var u authModel.UserModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, userID).Error; err != nil {
			return err
		}
		if !u.MustResetCredentials {
			return ErrAlreadyReset
		}
		newUserName = strings.TrimSpace(newUserName)
		if newUserName != u.UserName {
			var n int64
			if err := tx.Model(&authModel.UserModel{}).
				Where("user_name = ? AND id <> ?", newUserName, u.ID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrUserNameTaken
			}
		}
		hash, err := HashPassword(newPassword)
		if err != nil {
			return err
		}
		u.UserName = newUserName
		u.Password = hash
		u.MustResetCredentials = false
		return tx.Model(&u).Updates(map[string]any{
			"user_name":              u.UserName,
			"password":               u.Password,
			"must_reset_credentials": false,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	// all sessions issued before the reset stop refreshing
	if err := db.Model(&authModel.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", u.ID).
		Update("revoked_at", time.Now().UTC()).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

var ErrUserNameTaken = errors.New("This username is already taken.")

// PurgeExpired deletes blacklist rows past their expiry and refresh tokens
// that are expired or revoked.
func PurgeExpired(db *gorm.DB, now time.Time) (int64, error) {
	var total int64
	res := db.Where("expired_at < ?", now).Delete(&authModel.TokenBlacklistModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	total += res.RowsAffected
	res = db.Where("expires_at < ? OR revoked_at IS NOT NULL", now).Delete(&authModel.RefreshTokenModel{})
	if res.Error != nil {
		return total, res.Error
	}
	return total + res.RowsAffected, nil
}

package service

import (
	"errors"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"gorm.io/gorm"

	authModel "copo_backend/internals/features/users/auth/model"
)

var ErrGoogleToken = errors.New("Invalid Google ID Token")

// GoogleVerifier returns the verified email carried by an ID token.
type GoogleVerifier interface {
	VerifyEmail(idToken, clientID string) (string, error)
}

type googleVerifier struct{}

func NewGoogleVerifier() GoogleVerifier { return googleVerifier{} }

func (googleVerifier) VerifyEmail(idToken, clientID string) (string, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return "", ErrGoogleToken
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return "", ErrGoogleToken
	}
	if claimSet.Email == "" {
		return "", ErrGoogleToken
	}
	return claimSet.Email, nil
}

// UserByGoogleEmail only signs in existing accounts, nothing is created.
func UserByGoogleEmail(db *gorm.DB, email string) (*authModel.UserModel, error) {
	var u authModel.UserModel
	err := db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}
	return &u, nil
}

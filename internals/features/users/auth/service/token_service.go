package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	authModel "copo_backend/internals/features/users/auth/model"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role      string `json:"role,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	FacultyID *uint  `json:"faculty_id,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// UserID reads the numeric subject.
func (c *Claims) UserID() (uint, error) {
	n, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || n == 0 {
		return 0, ErrInvalidToken
	}
	return uint(n), nil
}

// TokenIssuer signs and verifies HS256 access/refresh tokens.
type TokenIssuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) TokenIssuer {
	return TokenIssuer{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (t TokenIssuer) now() time.Time {
	if t.Now == nil {
		return time.Now().UTC()
	}
	return t.Now()
}

func (t TokenIssuer) sign(u authModel.UserModel, typ string, ttl time.Duration, secret []byte) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, fmt.Errorf("%s token secret is not configured", typ)
	}
	now := t.now()
	exp := now.Add(ttl)
	claims := Claims{
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if typ == TokenTypeAccess {
		claims.Role = u.Role
		claims.UserName = u.UserName
		claims.FacultyID = u.FacultyID
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	return signed, exp, err
}

func (t TokenIssuer) IssueAccess(u authModel.UserModel) (string, time.Time, error) {
	return t.sign(u, TokenTypeAccess, t.AccessTTL, t.AccessSecret)
}

func (t TokenIssuer) IssueRefresh(u authModel.UserModel) (string, time.Time, error) {
	return t.sign(u, TokenTypeRefresh, t.RefreshTTL, t.RefreshSecret)
}

func (t TokenIssuer) parse(raw, typ string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != typ {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t TokenIssuer) ParseAccess(raw string) (*Claims, error) {
	return t.parse(raw, TokenTypeAccess, t.AccessSecret)
}

func (t TokenIssuer) ParseRefresh(raw string) (*Claims, error) {
	return t.parse(raw, TokenTypeRefresh, t.RefreshSecret)
}

// RefreshHash is what gets stored for a refresh token.
func (t TokenIssuer) RefreshHash(raw string) []byte {
	m := hmac.New(sha256.New, t.RefreshSecret)
	_, _ = m.Write([]byte(raw))
	return m.Sum(nil)
}

package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "copo_backend/internals/features/users/auth/model"
	"copo_backend/internals/features/users/auth/service"
)

func issuer(now time.Time) service.TokenIssuer {
	t := service.NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	t.Now = func() time.Time { return now }
	return t
}

func TestAccessTokenRoundTrip(t *testing.T) {
	fid := uint(7)
	u := authModel.UserModel{ID: 42, UserName: "ada", Role: "teacher", FacultyID: &fid}
	tokens := issuer(time.Now().UTC())

	raw, exp, err := tokens.IssueAccess(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := tokens.ParseAccess(raw)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	assert.Equal(t, "teacher", claims.Role)
	assert.Equal(t, "ada", claims.UserName)
	require.NotNil(t, claims.FacultyID)
	assert.EqualValues(t, 7, *claims.FacultyID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	u := authModel.UserModel{ID: 1, Role: "admin"}
	tokens := issuer(time.Now().UTC())

	access, _, err := tokens.IssueAccess(u)
	require.NoError(t, err)
	refresh, _, err := tokens.IssueRefresh(u)
	require.NoError(t, err)

	_, err = tokens.ParseRefresh(access)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
	_, err = tokens.ParseAccess(refresh)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	claims, err := tokens.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Empty(t, claims.Role, "refresh tokens carry no role")
}

func TestExpiredAndForeignTokens(t *testing.T) {
	u := authModel.UserModel{ID: 1, Role: "admin"}

	old := issuer(time.Now().Add(-time.Hour).UTC())
	raw, _, err := old.IssueAccess(u)
	require.NoError(t, err)
	_, err = issuer(time.Now().UTC()).ParseAccess(raw)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	other := service.NewTokenIssuer("another-secret", "refresh-secret", time.Minute, time.Hour)
	raw, _, err = other.IssueAccess(u)
	require.NoError(t, err)
	_, err = issuer(time.Now().UTC()).ParseAccess(raw)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = issuer(time.Now().UTC()).ParseAccess("not.a.jwt")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestMissingSecret(t *testing.T) {
	tokens := service.NewTokenIssuer("", "", time.Minute, time.Hour)
	_, _, err := tokens.IssueAccess(authModel.UserModel{ID: 1})
	assert.Error(t, err)
}

func TestRefreshHashIsKeyed(t *testing.T) {
	a := service.NewTokenIssuer("x", "one", time.Minute, time.Hour)
	b := service.NewTokenIssuer("x", "two", time.Minute, time.Hour)
	assert.Equal(t, a.RefreshHash("tok"), a.RefreshHash("tok"))
	assert.NotEqual(t, a.RefreshHash("tok"), b.RefreshHash("tok"))
	assert.Len(t, a.RefreshHash("tok"), 32)
}

func TestPasswordHash(t *testing.T) {
	hash, err := service.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.NoError(t, service.CheckPasswordHash(hash, "s3cret-pass"))
	assert.Error(t, service.CheckPasswordHash(hash, "wrong"))
	assert.ErrorIs(t, service.ValidatePassword("12345"), service.ErrWeakPassword)
}

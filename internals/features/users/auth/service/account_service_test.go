package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModel "copo_backend/internals/features/users/auth/model"
	"copo_backend/internals/features/users/auth/service"
	"copo_backend/internals/testutil/testdb"
)

func TestNormalizeEmail(t *testing.T) {
	ok := map[string]string{
		"  Ada@Uni.EDU ":       "ada@uni.edu",
		"jane.austen@uni.edu":  "jane.austen@uni.edu",
		"x+tag@dept.uni.ac.in": "x+tag@dept.uni.ac.in",
	}
	for in, want := range ok {
		got, err := service.NormalizeEmail(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, bad := range []string{"", "ada", "ada@localhost", "Ada <ada@uni.edu>", "a@b@c.com"} {
		_, err := service.NormalizeEmail(bad)
		assert.ErrorIs(t, err, service.ErrInvalidEmail, bad)
	}
}

func TestProvisionTeacher(t *testing.T) {
	db := testdb.New(t)

	u, err := service.ProvisionTeacher(db, 1, "ada@uni.edu", " 9876543210 ")
	require.NoError(t, err)
	assert.Equal(t, "ada", u.UserName)
	assert.Equal(t, "teacher", u.Role)
	assert.True(t, u.MustResetCredentials)
	assert.True(t, u.IsActive)
	require.NotNil(t, u.FacultyID)
	assert.EqualValues(t, 1, *u.FacultyID)
	assert.NoError(t, service.CheckPasswordHash(u.Password, "9876543210"))

	second, err := service.ProvisionTeacher(db, 2, "ada@other.edu", "")
	require.NoError(t, err)
	assert.Equal(t, "ada2", second.UserName)
	assert.NoError(t, service.CheckPasswordHash(second.Password, "ada2"), "username is the password without a phone")

	third, err := service.UniqueUserName(db, "ADA")
	require.NoError(t, err)
	assert.Equal(t, "ada3", third)

	exists, err := service.AccountExists(db, "ADA@uni.edu")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAuthenticate(t *testing.T) {
	db := testdb.New(t)
	u, err := service.ProvisionTeacher(db, 1, "ada@uni.edu", "9876543210")
	require.NoError(t, err)

	got, err := service.Authenticate(db, "ada", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = service.Authenticate(db, "ADA@UNI.EDU", "9876543210")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = service.Authenticate(db, "ada", "wrong")
	assert.ErrorIs(t, err, service.ErrBadCredentials)
	_, err = service.Authenticate(db, "nobody", "9876543210")
	assert.ErrorIs(t, err, service.ErrBadCredentials)

	require.NoError(t, db.Model(u).Update("is_active", false).Error)
	_, err = service.Authenticate(db, "ada", "9876543210")
	assert.ErrorIs(t, err, service.ErrInactiveAccount)
}

func TestRotateAndLogout(t *testing.T) {
	db := testdb.New(t)
	u, err := service.ProvisionTeacher(db, 1, "ada@uni.edu", "9876543210")
	require.NoError(t, err)
	tokens := service.NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)

	pair, err := tokens.IssuePair(db, *u, service.ClientMeta{UserAgent: "test", IP: "127.0.0.1"})
	require.NoError(t, err)

	next, user, err := tokens.Rotate(db, pair.Refresh, service.ClientMeta{})
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
	assert.NotEqual(t, pair.Refresh, next.Refresh)

	_, _, err = tokens.Rotate(db, pair.Refresh, service.ClientMeta{})
	assert.ErrorIs(t, err, service.ErrRefreshRevoked)

	require.NoError(t, tokens.Logout(db, next.Access, next.Refresh))
	require.NoError(t, tokens.Logout(db, next.Access, ""), "logging out twice is harmless")
	listed, err := service.IsBlacklisted(db, next.Access)
	require.NoError(t, err)
	assert.True(t, listed)
	_, _, err = tokens.Rotate(db, next.Refresh, service.ClientMeta{})
	assert.ErrorIs(t, err, service.ErrRefreshRevoked)
}

func TestResetCredentials(t *testing.T) {
	db := testdb.New(t)
	u, err := service.ProvisionTeacher(db, 1, "ada@uni.edu", "9876543210")
	require.NoError(t, err)
	_, err = service.ProvisionTeacher(db, 2, "grace@uni.edu", "")
	require.NoError(t, err)

	_, err = service.ResetCredentials(db, u.ID, "grace", "new-pass")
	assert.ErrorIs(t, err, service.ErrUserNameTaken)

	got, err := service.ResetCredentials(db, u.ID, " lovelace ", "new-pass")
	require.NoError(t, err)
	assert.Equal(t, "lovelace", got.UserName)
	assert.False(t, got.MustResetCredentials)

	_, err = service.Authenticate(db, "lovelace", "new-pass")
	assert.NoError(t, err)

	_, err = service.ResetCredentials(db, u.ID, "again", "new-pass")
	assert.ErrorIs(t, err, service.ErrAlreadyReset)
}

func TestPurgeExpired(t *testing.T) {
	db := testdb.New(t)
	now := time.Now().UTC()
	revoked := now.Add(-time.Minute)

	require.NoError(t, db.Create(&[]authModel.TokenBlacklistModel{
		{Token: "old", ExpiredAt: now.Add(-time.Hour)},
		{Token: "live", ExpiredAt: now.Add(time.Hour)},
	}).Error)
	require.NoError(t, db.Create(&[]authModel.RefreshTokenModel{
		{UserID: 1, TokenHash: []byte("a"), ExpiresAt: now.Add(-time.Hour)},
		{UserID: 1, TokenHash: []byte("b"), ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked},
		{UserID: 1, TokenHash: []byte("c"), ExpiresAt: now.Add(time.Hour)},
	}).Error)

	n, err := service.PurgeExpired(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	var left int64
	db.Model(&authModel.TokenBlacklistModel{}).Count(&left)
	assert.EqualValues(t, 1, left)
	db.Model(&authModel.RefreshTokenModel{}).Count(&left)
	assert.EqualValues(t, 1, left)
}

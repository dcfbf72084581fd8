package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copo_backend/internals/constants"
	authModel "copo_backend/internals/features/users/auth/model"
	"copo_backend/internals/testutil"
)

func login(t *testing.T, h *testutil.Harness, identifier string) (access, refresh string) {
	t.Helper()
	res := h.Do(http.MethodPost, "/api/auth/token", "", map[string]any{
		"username": identifier,
		"password": testutil.Password,
	})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	access, _ = res.Data()["access"].(string)
	refresh, _ = res.Data()["refresh"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	return access, refresh
}

func TestLoginByUserNameOrEmail(t *testing.T) {
	h := testutil.New(t)
	h.User("alice", constants.RoleTeacher, nil)

	access, _ := login(t, h, "alice")
	res := h.Do(http.MethodGet, "/api/auth/user-profile", access, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "alice", res.Data()["user_name"])
	assert.Equal(t, constants.RoleTeacher, res.Data()["role"])

	login(t, h, "ALICE@copo.test")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	h := testutil.New(t)
	h.User("alice", constants.RoleTeacher, nil)

	res := h.Do(http.MethodPost, "/api/auth/token", "", map[string]any{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = h.Do(http.MethodPost, "/api/auth/token", "", map[string]any{"password": "nope"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "username")
}

func TestLoginInactiveAccount(t *testing.T) {
	h := testutil.New(t)
	u := h.User("bob", constants.RoleTeacher, nil)
	require.NoError(t, h.DB.Model(&u).Update("is_active", false).Error)

	res := h.Do(http.MethodPost, "/api/auth/token", "", map[string]any{"username": "bob", "password": testutil.Password})
	assert.Equal(t, http.StatusForbidden, res.Status)
}

func TestRefreshRotatesToken(t *testing.T) {
	h := testutil.New(t)
	h.User("alice", constants.RoleAdmin, nil)
	_, refresh := login(t, h, "alice")

	res := h.Do(http.MethodPost, "/api/auth/token/refresh", "", map[string]any{"refresh": refresh})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.NotEqual(t, refresh, res.Data()["refresh"])
	assert.Equal(t, constants.RoleAdmin, res.Data()["role"])

	// the old one was revoked by the rotation
	res = h.Do(http.MethodPost, "/api/auth/token/refresh", "", map[string]any{"refresh": refresh})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = h.Do(http.MethodPost, "/api/auth/token/refresh", "", map[string]any{"refresh": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestLogoutBlacklistsAccessToken(t *testing.T) {
	h := testutil.New(t)
	h.User("alice", constants.RoleTeacher, nil)
	access, refresh := login(t, h, "alice")

	res := h.Do(http.MethodPost, "/api/auth/logout", access, map[string]any{"refresh": refresh})
	require.Equal(t, http.StatusOK, res.Status)

	res = h.Do(http.MethodGet, "/api/auth/user-profile", access, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = h.Do(http.MethodPost, "/api/auth/token/refresh", "", map[string]any{"refresh": refresh})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestResetCredentialsOnlyOnce(t *testing.T) {
	h := testutil.New(t)
	u := h.User("t.smith", constants.RoleTeacher, nil)
	require.NoError(t, h.DB.Model(&u).Update("must_reset_credentials", true).Error)

	res := h.Do(http.MethodPost, "/api/auth/token", "", map[string]any{"username": "t.smith", "password": testutil.Password})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, true, res.Data()["is_first_login"])
	access := res.Data()["access"].(string)

	res = h.Do(http.MethodPost, "/api/auth/reset-credentials", access, map[string]any{"username": "tsmith", "password": "brand-new-pass"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "tsmith", res.Data()["user_name"])
	assert.Equal(t, false, res.Data()["must_reset_credentials"])

	res = h.Do(http.MethodPost, "/api/auth/reset-credentials", access, map[string]any{"username": "tsmith", "password": "another-pass"})
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodPost, "/api/auth/token", "", map[string]any{"username": "tsmith", "password": "brand-new-pass"})
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestRegisterIsAdminOnly(t *testing.T) {
	h := testutil.New(t)
	body := map[string]any{"username": "carol", "email": "carol@uni.edu", "password": "secret1"}

	res := h.Do(http.MethodPost, "/api/auth/register", h.TeacherToken(), body)
	assert.Equal(t, http.StatusForbidden, res.Status)

	admin := h.AdminToken()
	res = h.Do(http.MethodPost, "/api/auth/register", admin, body)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, constants.RoleTeacher, res.Data()["role"])

	res = h.Do(http.MethodPost, "/api/auth/register", admin, body)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = h.Do(http.MethodPost, "/api/auth/register", admin, map[string]any{"username": "dan", "email": "not-an-email", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Contains(t, res.Errors(), "email")
}

func TestLoginGoogle(t *testing.T) {
	h := testutil.New(t, testutil.WithGoogle(testutil.FakeGoogle{"good": "alice@copo.test", "stranger": "x@elsewhere.org"}, "client-id"))
	h.User("alice", constants.RoleTeacher, nil)

	res := h.Do(http.MethodPost, "/api/auth/login-google", "", map[string]any{"id_token": "good"})
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	assert.NotEmpty(t, res.Data()["access"])

	res = h.Do(http.MethodPost, "/api/auth/login-google", "", map[string]any{"id_token": "stranger"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = h.Do(http.MethodPost, "/api/auth/login-google", "", map[string]any{"id_token": "forged"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	var n int64
	h.DB.Model(&authModel.UserModel{}).Count(&n)
	assert.EqualValues(t, 1, n, "google login never creates accounts")
}

func TestLoginGoogleNotConfigured(t *testing.T) {
	h := testutil.New(t)
	res := h.Do(http.MethodPost, "/api/auth/login-google", "", map[string]any{"id_token": "x"})
	assert.Equal(t, http.StatusNotImplemented, res.Status)
}

func TestAPIRequiresToken(t *testing.T) {
	h := testutil.New(t)
	res := h.Do(http.MethodGet, "/api/departments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = h.Do(http.MethodGet, "/api/departments", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

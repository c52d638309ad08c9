package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naimekattor/user-management-app/internal/apperr"
)

func TestAuthService_RegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, "A", "a@x.com", "secret"))

	token, user, err := env.Auth.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "active", user.Status)
	require.NotNil(t, user.LastLogin)
}

func TestAuthService_Register_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name             string
		uname, email, pw string
	}{
		{"missing name", "", "a@x.com", "secret"},
		{"missing email", "A", "", "secret"},
		{"missing password", "A", "a@x.com", ""},
		{"short password", "A", "a@x.com", "12345"},
		// 5 characters spread over 10 bytes; the minimum counts runes
		{"short multibyte password", "A", "a@x.com", "парол"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := env.Auth.Register(ctx, tc.uname, tc.email, tc.pw)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
		})
	}

	// exactly six multibyte characters is enough
	require.NoError(t, env.Auth.Register(ctx, "B", "b@x.com", "пароль"))
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, "A", "a@x.com", "secret"))

	err := env.Auth.Register(ctx, "B", "  A@X.COM ", "secret2")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	assert.Equal(t, "User already exists.", apperr.Message(err))

	// no second record
	users, lerr := env.Repo.List(ctx)
	require.NoError(t, lerr)
	assert.Len(t, users, 1)
}

func TestAuthService_Login_BadCredentialsIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, "A", "a@x.com", "secret"))

	_, _, errWrongPw := env.Auth.Login(ctx, "a@x.com", "wrong")
	_, _, errNoUser := env.Auth.Login(ctx, "ghost@x.com", "secret")

	require.Error(t, errWrongPw)
	require.Error(t, errNoUser)
	assert.Equal(t, apperr.Status(errWrongPw), apperr.Status(errNoUser))
	assert.Equal(t, apperr.Message(errWrongPw), apperr.Message(errNoUser))
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(errWrongPw))
}

func TestAuthService_Login_BlockedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, "A", "a@x.com", "secret"))
	u, err := env.Repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, env.Repo.SetBlocked(ctx, []string{u.ID}, true))

	_, _, err = env.Auth.Login(ctx, "a@x.com", "secret")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.Status(err))
}

func TestAuthService_VerifyAndLoadUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, "A", "a@x.com", "secret"))
	token, _, err := env.Auth.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)

	u, err := env.Auth.VerifyAndLoadUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	_, err = env.Auth.VerifyAndLoadUser(ctx, "")
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))

	_, err = env.Auth.VerifyAndLoadUser(ctx, "garbage")
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

// A still-valid token stops working the moment its user is blocked, and
// again once the user is deleted.
func TestAuthService_VerifyAndLoadUser_LiveStateCheck(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, "A", "a@x.com", "secret"))
	token, _, err := env.Auth.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)

	u, err := env.Repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, env.Repo.SetBlocked(ctx, []string{u.ID}, true))
	_, err = env.Auth.VerifyAndLoadUser(ctx, token)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.Status(err))

	require.NoError(t, env.Repo.SetBlocked(ctx, []string{u.ID}, false))
	_, err = env.Auth.VerifyAndLoadUser(ctx, token)
	require.NoError(t, err)

	require.NoError(t, env.Repo.DeleteByIDs(ctx, []string{u.ID}))
	_, err = env.Auth.VerifyAndLoadUser(ctx, token)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.Status(err))
}

func TestAuthService_VerifyAndLoadUser_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Auth.Register(ctx, "A", "a@x.com", "secret"))
	u, err := env.Repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	env.JWTer.TTL = -5 * time.Minute
	token, err := env.JWTer.Issue(u.ID)
	require.NoError(t, err)

	_, err = env.Auth.VerifyAndLoadUser(ctx, token)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(err))
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUser(t *testing.T) {
	env := newTestEnv(t)

	var resp StatusResponse
	rec := env.do(t, http.MethodPost, "/register", map[string]any{"username": "alice", "password": "pw1"}, nil, &resp)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user created", resp.Status)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", map[string]any{"username": "alice", "password": "pw1"}, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ErrorResponse
	rec = env.do(t, http.MethodPost, "/register", map[string]any{"username": "alice", "password": "pw2"}, nil, &resp)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username already exists", resp.Error)
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", map[string]any{"username": "", "password": "pw1"}, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/register", map[string]any{"username": "alice", "password": ""}, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.login(t)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginFailureDoesNotRevealUsernames(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", map[string]any{"username": "alice", "password": "pw1"}, nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var wrongPassword ErrorResponse
	rec = env.do(t, http.MethodPost, "/login", map[string]any{"username": "alice", "password": "nope"}, nil, &wrongPassword)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var unknownUser ErrorResponse
	rec = env.do(t, http.MethodPost, "/login", map[string]any{"username": "bob", "password": "nope"}, nil, &unknownUser)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, "Invalid credentials", wrongPassword.Error)
	assert.Equal(t, wrongPassword.Error, unknownUser.Error)
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	for i := 0; i < 2; i++ {
		var resp StatusResponse
		rec := env.do(t, http.MethodPost, "/logout", nil, cookie, &resp)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "logged_out", resp.Status)
	}
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(t, http.MethodPost, "/logout", nil, cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

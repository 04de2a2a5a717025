package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Success(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice@example.com", "pw1")

	rec := e.postToken(t, "alice@example.com", "pw1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	tok := decode[tokenResponse](t, rec)
	assert.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.InDelta(t, 1800, tok.ExpiresIn, 5)
}

func TestToken_FailuresLookAlike(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice@example.com", "pw1")

	wrongPassword := e.postToken(t, "alice@example.com", "nope")
	unknownUser := e.postToken(t, "ghost@example.com", "nope")

	for _, rec := range []*httptest.ResponseRecorder{wrongPassword, unknownUser} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	}
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestToken_BadRequests(t *testing.T) {
	e := newTestEnv(t)

	rec := e.postToken(t, "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = e.do(t, http.MethodPost, "/token", "",
		strings.NewReader("grant_type=client_credentials&username=a@b.c&password=x"),
		"application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestToken_RateLimited(t *testing.T) {
	e := newTestEnv(t, WithLoginRateLimit(1, 2))

	for range 2 {
		rec := e.postToken(t, "ghost@example.com", "nope")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := e.postToken(t, "ghost@example.com", "nope")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRegister(t *testing.T) {
	e := newTestEnv(t)

	rec := e.doJSON(t, http.MethodPost, "/users/", "", registerRequest{Email: "Bob@Example.com", Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	u := decode[userView](t, rec)
	assert.Equal(t, "bob@example.com", u.Email)
	assert.False(t, u.IsAdmin)
	assert.True(t, u.IsActive)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = e.doJSON(t, http.MethodPost, "/users/", "", registerRequest{Email: "bob@example.com", Password: "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decode[errorBody](t, rec).Detail)
}

func TestRegister_Validation(t *testing.T) {
	e := newTestEnv(t)

	rec := e.doJSON(t, http.MethodPost, "/users/", "", registerRequest{Email: "not-an-email", Password: "pw"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = e.do(t, http.MethodPost, "/users/", "", strings.NewReader("{"), "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRegister_AdminFlag(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice@example.com", "pw1")
	alice := e.login(t, "alice@example.com", "pw1")
	admin := e.login(t, adminEmail, adminPassword)

	req := registerRequest{Email: "boss@example.com", Password: "pw", IsAdmin: true}

	rec := e.doJSON(t, http.MethodPost, "/users/", "", req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.doJSON(t, http.MethodPost, "/users/", alice, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.doJSON(t, http.MethodPost, "/users/", "garbage", req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.doJSON(t, http.MethodPost, "/users/", admin, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[userView](t, rec).IsAdmin)
}

func TestMe(t *testing.T) {
	e := newTestEnv(t)
	e.register(t, "alice@example.com", "pw1")
	tok := e.login(t, "alice@example.com", "pw1")

	rec := e.do(t, http.MethodGet, "/users/me/", tok, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", decode[userView](t, rec).Email)

	rec = e.do(t, http.MethodGet, "/users/me/", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = e.do(t, http.MethodGet, "/users/me/", tok+"x", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

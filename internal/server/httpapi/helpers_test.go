package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/logging"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/newsroom/internal/server/services"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-pass"
)

type testEnv struct {
	srv   *Server
	users *services.UserService
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	hasher, err := auth.NewHasher(auth.SchemeBcrypt, 4)
	require.NoError(t, err)
	codec, err := auth.NewTokenCodec(auth.TokenConfig{
		Secret:    []byte("test-secret"),
		Algorithm: "HS256",
		Issuer:    "newsroom",
		Lifetime:  30 * time.Minute,
	})
	require.NoError(t, err)

	rm := repomanager.NewMemoryRepositoryManager()
	us, err := services.NewUserService(nil, rm, hasher, codec)
	require.NoError(t, err)
	_, err = us.EnsureAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	as := services.NewArticleService(nil, rm)
	return &testEnv{
		srv:   NewServer(":0", logging.Nop{}, us, as, opts...),
		users: us,
	}
}

func (e *testEnv) do(t *testing.T, method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, target, token string, v any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = strings.NewReader(string(b))
	}
	return e.do(t, method, target, token, body, "application/json")
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.postToken(t, email, password)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tok tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	return tok.AccessToken
}

func (e *testEnv) postToken(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	return e.do(t, http.MethodPost, "/token", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (e *testEnv) register(t *testing.T, email, password string) {
	t.Helper()
	rec := e.doJSON(t, http.MethodPost, "/users/", "", registerRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

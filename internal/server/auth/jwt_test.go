package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newCodec(t *testing.T, mut ...func(*TokenConfig)) *TokenCodec {
	t.Helper()
	cfg := TokenConfig{
		Secret:    []byte("super-secret"),
		Algorithm: "HS256",
		Issuer:    "newsroom",
		Lifetime:  30 * time.Minute,
	}
	for _, m := range mut {
		m(&cfg)
	}
	c, err := NewTokenCodec(cfg)
	require.NoError(t, err)
	return c
}

func TestNewTokenCodec_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  TokenConfig
	}{
		{"empty secret", TokenConfig{Algorithm: "HS256", Lifetime: time.Minute}},
		{"rsa algorithm", TokenConfig{Secret: []byte("k"), Algorithm: "RS256", Lifetime: time.Minute}},
		{"none algorithm", TokenConfig{Secret: []byte("k"), Algorithm: "none", Lifetime: time.Minute}},
		{"zero lifetime", TokenConfig{Secret: []byte("k"), Algorithm: "HS256"}},
		{"negative lifetime", TokenConfig{Secret: []byte("k"), Algorithm: "HS256", Lifetime: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenCodec(tt.cfg)
			require.Error(t, err)
		})
	}

	c, err := NewTokenCodec(TokenConfig{Secret: []byte("k"), Lifetime: time.Minute})
	require.NoError(t, err, "empty algorithm defaults to HS256")
	assert.Equal(t, "HS256", c.method.Alg())
}

func TestIssueDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			c := newCodec(t, func(cfg *TokenConfig) { cfg.Algorithm = alg })

			tok, err := c.Issue(Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "alice@example.com"},
				UserID:           7,
			}, t0)
			require.NoError(t, err)

			for _, t1 := range []time.Time{t0, t0.Add(time.Minute), t0.Add(c.Lifetime() - time.Second)} {
				got, err := c.Decode(tok, t1)
				require.NoError(t, err, "decode at %s", t1)
				assert.Equal(t, "alice@example.com", got.Subject)
				assert.Equal(t, int64(7), got.UserID)
				assert.Equal(t, "newsroom", got.Issuer)
				assert.Equal(t, t0.Add(30*time.Minute).Unix(), got.ExpiresAt.Unix())
				assert.Equal(t, t0.Unix(), got.IssuedAt.Unix())
				assert.NotEmpty(t, got.ID)
			}
		})
	}
}

func TestDecode_ExpiredAtAndAfterLifetime(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	tok, err := c.Issue(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a@b.c"}}, t0)
	require.NoError(t, err)

	for _, t1 := range []time.Time{t0.Add(c.Lifetime()), t0.Add(c.Lifetime() + time.Second), t0.Add(24 * time.Hour)} {
		_, err := c.Decode(tok, t1)
		require.ErrorIs(t, err, common.ErrInvalidToken, "decode at %s", t1)
	}
}

func TestIssue_UniqueJTI(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	a, err := c.Issue(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a@b.c"}}, t0)
	require.NoError(t, err)
	b, err := c.Issue(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a@b.c"}}, t0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecode_AnySingleBitFlipFails(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	tok, err := c.Issue(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a@b.c"}}, t0)
	require.NoError(t, err)

	for i := 0; i < len(tok); i++ {
		for bit := 0; bit < 8; bit++ {
			b := []byte(tok)
			b[i] ^= 1 << bit
			for _, t1 := range []time.Time{t0, t0.Add(time.Minute)} {
				if _, err := c.Decode(string(b), t1); err == nil {
					t.Fatalf("tampered token accepted: byte %d bit %d", i, bit)
				}
			}
		}
	}
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(t0.Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"two segments", "abc.def"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a", Issuer: "newsroom", ExpiresAt: exp}})},
		{"other hmac algorithm", sign(jwt.SigningMethodHS512, []byte("super-secret"), Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a", Issuer: "newsroom", ExpiresAt: exp}})},
		{"alg none", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a", Issuer: "newsroom", ExpiresAt: exp}})},
		{"missing exp", sign(jwt.SigningMethodHS256, []byte("super-secret"), Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a", Issuer: "newsroom"}})},
		{"wrong issuer", sign(jwt.SigningMethodHS256, []byte("super-secret"), Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a", Issuer: "elsewhere", ExpiresAt: exp}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Decode(tt.token, t0)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, common.ErrInvalidToken)
			assert.Equal(t, common.ErrInvalidToken.Error(), err.Error(), "reason must not leak")
		})
	}
}

func TestDecode_NoIssuerConfigured(t *testing.T) {
	t.Parallel()
	c := newCodec(t, func(cfg *TokenConfig) { cfg.Issuer = "" })

	tok, err := c.Issue(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a@b.c", Issuer: "caller-set"}}, t0)
	require.NoError(t, err)

	got, err := c.Decode(tok, t0)
	require.NoError(t, err)
	assert.Equal(t, "caller-set", got.Issuer)
}

func TestToken_IsBearerSafe(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	tok, err := c.Issue(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a+b@example.com"}}, t0)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(tok, "."))
	assert.False(t, strings.ContainsAny(tok, " \t\r\n=+/"))
}

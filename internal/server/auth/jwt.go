package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the claims carried by an access token. Subject holds the
// account email; UserID pins the token to the record it was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid,omitempty"`
}

// TokenConfig is read once at startup and never changed afterwards.
type TokenConfig struct {
	Secret    []byte
	Algorithm string
	Issuer    string
	Lifetime  time.Duration
}

// TokenCodec issues and decodes HMAC-signed JWT access tokens.
type TokenCodec struct {
	secret   []byte
	method   jwt.SigningMethod
	issuer   string
	lifetime time.Duration
}

var hmacMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// IsSupportedAlgorithm reports whether alg can sign tokens.
func IsSupportedAlgorithm(alg string) bool {
	_, ok := hmacMethods[alg]
	return ok
}

func NewTokenCodec(cfg TokenConfig) (*TokenCodec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := hmacMethods[alg]
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", cfg.Algorithm)
	}
	if cfg.Lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", cfg.Lifetime)
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &TokenCodec{
		secret:   secret,
		method:   method,
		issuer:   cfg.Issuer,
		lifetime: cfg.Lifetime,
	}, nil
}

// Lifetime is the validity window of every issued token.
func (c *TokenCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue signs claims with exp = now + lifetime and iat = now. A fresh jti is
// assigned and the configured issuer overrides any issuer in claims.
func (c *TokenCodec) Issue(claims Claims, now time.Time) (string, error) {
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.lifetime))
	claims.ID = uuid.NewString()
	if c.issuer != "" {
		claims.Issuer = c.issuer
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies token as of now and returns its claims. Every failure,
// whatever the cause, is common.ErrInvalidToken.
func (c *TokenCodec) Decode(token string, now time.Time) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return c.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

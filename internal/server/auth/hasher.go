package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported password hashing schemes.
const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

const argon2Prefix = "argon2id$"

// Hasher hashes passwords one way and checks plaintexts against stored hashes.
// Verify returns common.ErrInvalidHash when the stored value cannot be parsed.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encoded string) (bool, error)
}

// BcryptMaxPasswordLen is the longest input bcrypt looks at. Longer
// plaintexts are refused by Hash and never match in Verify.
const BcryptMaxPasswordLen = 72

// BcryptHasher uses bcrypt at the given cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > BcryptMaxPasswordLen {
		return "", fmt.Errorf("%w: password longer than %d bytes", common.ErrorValidation, BcryptMaxPasswordLen)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Verify(plaintext, encoded string) (bool, error) {
	// CompareHashAndPassword only sees the first 72 bytes, so a longer
	// plaintext would match any hash of its prefix.
	if len(plaintext) > BcryptMaxPasswordLen {
		if _, err := bcrypt.Cost([]byte(encoded)); err != nil {
			return false, common.ErrInvalidHash
		}
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, common.ErrInvalidHash
	}
}

// Argon2Params are the argon2id tuning knobs. Memory is in KiB.
type Argon2Params struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLen     int
	KeyLen      uint32
}

var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Time:        3,
	Parallelism: 1,
	SaltLen:     16,
	KeyLen:      32,
}

// Argon2Hasher encodes hashes as argon2id$m=<M>,t=<T>,p=<P>$<b64 salt>$<b64 key>.
// Verify reads the parameters from the encoded value, so a zero Argon2Hasher
// can check hashes written with any parameters.
type Argon2Hasher struct {
	Params Argon2Params
}

func (h Argon2Hasher) Hash(plaintext string) (string, error) {
	p := h.Params
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(plaintext), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
	return fmt.Sprintf("%sm=%d,t=%d,p=%d$%s$%s", argon2Prefix,
		p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h Argon2Hasher) Verify(plaintext, encoded string) (bool, error) {
	if !strings.HasPrefix(encoded, argon2Prefix) {
		return false, common.ErrInvalidHash
	}
	parts := strings.Split(encoded[len(argon2Prefix):], "$")
	if len(parts) != 3 {
		return false, common.ErrInvalidHash
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[0], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, common.ErrInvalidHash
	}
	// argon2.IDKey panics on zero rounds or zero threads
	if m == 0 || t == 0 || p == 0 {
		return false, common.ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, common.ErrInvalidHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false, common.ErrInvalidHash
	}

	got := argon2.IDKey([]byte(plaintext), salt, t, m, p, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// schemeHasher hashes with the configured scheme and verifies with whichever
// scheme produced the stored value.
type schemeHasher struct {
	primary Hasher
}

// NewHasher returns a Hasher that writes hashes using scheme. bcryptCost is
// ignored for argon2id.
func NewHasher(scheme string, bcryptCost int) (Hasher, error) {
	switch scheme {
	case SchemeBcrypt, "":
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return &schemeHasher{primary: BcryptHasher{Cost: bcryptCost}}, nil
	case SchemeArgon2id:
		return &schemeHasher{primary: Argon2Hasher{Params: DefaultArgon2Params}}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

func (h *schemeHasher) Hash(plaintext string) (string, error) {
	return h.primary.Hash(plaintext)
}

func (h *schemeHasher) Verify(plaintext, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, argon2Prefix):
		return Argon2Hasher{}.Verify(plaintext, encoded)
	case strings.HasPrefix(encoded, "$2"):
		return BcryptHasher{}.Verify(plaintext, encoded)
	default:
		return false, common.ErrInvalidHash
	}
}

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/go-logr/logr"
)

// Authenticator checks an email/password pair against stored credentials.
type Authenticator struct {
	store     UserStore
	hasher    Hasher
	dummyHash string
	log       logr.Logger
}

// NewAuthenticator hashes a random placeholder once with hasher. Logins for
// unknown emails verify against it so they cost the same as a wrong password.
//
// The match is only as close as the stored hashes allow. The dummy uses the
// configured scheme, so accounts still stored under the other scheme verify
// in a different time, and an unreadable stored hash fails without hashing
// at all. Both cases need a known account with a legacy or damaged row.
func NewAuthenticator(store UserStore, hasher Hasher, opts ...Option) (*Authenticator, error) {
	o := resolveOptions(opts)

	placeholder, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("generate placeholder: %w", err)
	}
	dummy, err := hasher.Hash(placeholder)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder: %w", err)
	}

	return &Authenticator{
		store:     store,
		hasher:    hasher,
		dummyHash: dummy,
		log:       o.logger.WithName("authenticator"),
	}, nil
}

// Authenticate returns the identity for email when password matches and the
// account is active. An unknown email, a wrong password and an inactive
// account all yield common.ErrAuthenticationFailed. Store failures other than
// not-found are returned wrapped.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		_, _ = a.hasher.Verify(password, a.dummyHash)
		a.log.V(1).Info("authentication failed", "reason", "unknown")
		return nil, common.ErrAuthenticationFailed
	}

	ok, err := a.hasher.Verify(password, user.HashedPassword)
	if err != nil {
		// Returns faster than a real verify; see NewAuthenticator.
		a.log.Error(err, "stored password hash unreadable", "user_id", user.ID)
		return nil, common.ErrAuthenticationFailed
	}
	if !ok {
		a.log.V(1).Info("authentication failed", "reason", "password", "user_id", user.ID)
		return nil, common.ErrAuthenticationFailed
	}
	if !user.IsActive {
		a.log.V(1).Info("authentication failed", "reason", "inactive", "user_id", user.ID)
		return nil, common.ErrAuthenticationFailed
	}

	return IdentityFromUser(user), nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/go-logr/logr"
)

// TokenDecoder is satisfied by *TokenCodec.
type TokenDecoder interface {
	Decode(token string, now time.Time) (*Claims, error)
}

// Resolver turns a presented bearer token into the caller's Identity.
type Resolver struct {
	tokens TokenDecoder
	store  UserStore
	log    logr.Logger
}

func NewResolver(tokens TokenDecoder, store UserStore, opts ...Option) *Resolver {
	o := resolveOptions(opts)
	return &Resolver{
		tokens: tokens,
		store:  store,
		log:    o.logger.WithName("resolver"),
	}
}

// Resolve fails with common.ErrUnauthenticated when the token does not decode,
// has no subject, names an unknown or inactive account, or was issued for a
// different record with the same email. Other store errors are returned
// wrapped.
func (r *Resolver) Resolve(ctx context.Context, token string, now time.Time) (*Identity, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	claims, err := r.tokens.Decode(token, now)
	if err != nil {
		r.log.V(1).Info("token rejected")
		return nil, common.ErrUnauthenticated
	}
	if claims.Subject == "" {
		r.log.V(1).Info("token without subject")
		return nil, common.ErrUnauthenticated
	}

	user, err := r.store.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			r.log.V(1).Info("token subject not found")
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsActive {
		r.log.V(1).Info("token subject inactive", "user_id", user.ID)
		return nil, common.ErrUnauthenticated
	}
	if claims.UserID != 0 && claims.UserID != user.ID {
		r.log.V(1).Info("token issued for another record", "user_id", user.ID)
		return nil, common.ErrUnauthenticated
	}

	return IdentityFromUser(user), nil
}

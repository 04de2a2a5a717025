package auth

import (
	"context"

	"github.com/dmitrijs2005/newsroom/internal/server/models"
)

// Identity is the caller resolved for a single request. It is never persisted.
type Identity struct {
	ID      int64
	Email   string
	IsAdmin bool
}

// IdentityFromUser projects a credential record onto an Identity.
func IdentityFromUser(u *models.User) *Identity {
	return &Identity{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by WithIdentity, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

// UserStore is the lookup the authenticator and resolver need.
// Implementations return common.ErrorNotFound for an unknown email.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

package grpc

import (
	"context"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/models"
	"github.com/dmitrijs2005/newsroom/internal/server/services"
)

// fakeUsers resolves tokens from a fixed table.
type fakeUsers struct {
	identities  map[string]*auth.Identity
	identifyErr error
	calls       int
}

func (f *fakeUsers) Register(context.Context, string, string, bool, *auth.Identity) (*models.User, error) {
	return nil, nil
}

func (f *fakeUsers) Login(context.Context, string, string) (*services.Token, error) {
	return nil, nil
}

func (f *fakeUsers) Identify(_ context.Context, token string) (*auth.Identity, error) {
	f.calls++
	if f.identifyErr != nil {
		return nil, f.identifyErr
	}
	if id, ok := f.identities[token]; ok {
		return id, nil
	}
	return nil, common.ErrUnauthenticated
}

func (f *fakeUsers) Me(context.Context, *auth.Identity) (*models.User, error) {
	return nil, nil
}

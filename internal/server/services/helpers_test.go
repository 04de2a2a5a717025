package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/dbx"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/models"
	"github.com/dmitrijs2005/newsroom/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/newsroom/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	c, err := auth.NewTokenCodec(auth.TokenConfig{
		Secret:    []byte("k"),
		Algorithm: "HS256",
		Issuer:    "newsroom",
		Lifetime:  30 * time.Minute,
	})
	require.NoError(t, err)
	return c
}

func newHasher(t *testing.T) auth.Hasher {
	t.Helper()
	h, err := auth.NewHasher(auth.SchemeBcrypt, 4)
	require.NoError(t, err)
	return h
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	s, err := NewUserService(nil, rm, newHasher(t), newCodec(t))
	require.NoError(t, err)
	s.now = func() time.Time { return testNow }
	return s
}

// countingManager wraps the memory manager and counts user inserts.
type countingManager struct {
	*repomanager.MemoryRepositoryManager
	creates int
}

func (m *countingManager) Users(db dbx.DBTX) users.Repository {
	return &countingUsers{Repository: m.MemoryRepositoryManager.Users(db), m: m}
}

type countingUsers struct {
	users.Repository
	m *countingManager
}

func (u *countingUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	u.m.creates++
	return u.Repository.Create(ctx, user)
}

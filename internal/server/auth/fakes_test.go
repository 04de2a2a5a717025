package auth

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/dmitrijs2005/newsroom/internal/server/models"
)

type fakeStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
	calls int
}

func newFakeStore(users ...*models.User) *fakeStore {
	s := &fakeStore{users: map[string]*models.User{}}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// countingHasher records every Verify call and the hash it was given.
type countingHasher struct {
	Hasher
	verified []string
}

func (h *countingHasher) Verify(plaintext, encoded string) (bool, error) {
	h.verified = append(h.verified, encoded)
	return h.Hasher.Verify(plaintext, encoded)
}

func fastHasher() Hasher {
	h, err := NewHasher(SchemeBcrypt, 4)
	if err != nil {
		panic(err)
	}
	return h
}

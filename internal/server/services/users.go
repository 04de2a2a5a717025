// Package services contains server-side business logic shared by the HTTP
// and gRPC transports.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/models"
	"github.com/dmitrijs2005/newsroom/internal/server/repositories/repomanager"
	"github.com/golang-jwt/jwt/v5"
)

// Token is what a successful login hands back to the client.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// UserService handles registration, login and identity lookups.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        auth.Hasher
	tokens        *auth.TokenCodec
	authenticator *auth.Authenticator
	resolver      *auth.Resolver
	now           func() time.Time
}

// NewUserService wires the authenticator and resolver against the users
// repository served by m. db may be nil for the in-memory backend.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.Hasher, tokens *auth.TokenCodec, opts ...auth.Option) (*UserService, error) {
	store := m.Users(db)

	authn, err := auth.NewAuthenticator(store, hasher, opts...)
	if err != nil {
		return nil, err
	}

	return &UserService{
		db:            db,
		repomanager:   m,
		hasher:        hasher,
		tokens:        tokens,
		authenticator: authn,
		resolver:      auth.NewResolver(tokens, store, opts...),
		now:           time.Now,
	}, nil
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return nil
}

// Register creates an active account. Granting isAdmin requires caller to be
// an administrator; caller may be nil otherwise. A taken email fails with
// common.ErrDuplicateIdentifier before anything is written.
func (s *UserService) Register(ctx context.Context, email, password string, isAdmin bool, caller *auth.Identity) (*models.User, error) {
	email = NormalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	if isAdmin {
		if err := auth.Authorize(caller, auth.OpAdminister, 0); err != nil {
			return nil, err
		}
	}

	return s.create(ctx, email, password, isAdmin)
}

func (s *UserService) create(ctx context.Context, email, password string, isAdmin bool) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateIdentifier
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{
		Email:          email,
		HashedPassword: hashed,
		IsAdmin:        isAdmin,
		IsActive:       true,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentifier) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (*Token, error) {
	id, err := s.authenticator.Authenticate(ctx, NormalizeEmail(email), password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	access, err := s.tokens.Issue(auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: id.Email},
		UserID:           id.ID,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &Token{
		AccessToken: access,
		TokenType:   common.BearerScheme,
		ExpiresAt:   now.Add(s.tokens.Lifetime()),
	}, nil
}

// Identify resolves a bearer token to the calling identity.
func (s *UserService) Identify(ctx context.Context, token string) (*auth.Identity, error) {
	return s.resolver.Resolve(ctx, token, s.now())
}

// Me loads the current record of the calling identity.
func (s *UserService) Me(ctx context.Context, id *auth.Identity) (*models.User, error) {
	if id == nil {
		return nil, common.ErrUnauthenticated
	}
	u, err := s.repomanager.Users(s.db).GetUserByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// EnsureAdmin creates an administrator account unless the email is already
// registered, in which case the existing account is left as is. It reports
// whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return false, err
	}

	_, err := s.create(ctx, email, password, true)
	if errors.Is(err, common.ErrDuplicateIdentifier) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

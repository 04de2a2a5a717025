// Package common defines shared constants and sentinel errors used across
// the client and server layers of newsroom. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Auth errors. ErrAuthenticationFailed and ErrUnauthenticated never say
	// whether the identifier exists.
	ErrAuthenticationFailed = errors.New("incorrect email or password")
	ErrUnauthenticated      = errors.New("could not validate credentials")
	ErrForbidden            = errors.New("not authorized to perform this operation")
	ErrDuplicateIdentifier  = errors.New("email already registered")

	// ErrInvalidToken covers bad signatures, malformed tokens and expired
	// tokens alike.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidHash is returned for a stored password hash that cannot be parsed.
	ErrInvalidHash = errors.New("invalid password hash")

	ErrTooManyRequests = errors.New("too many requests")
)

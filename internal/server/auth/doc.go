// Package auth holds the authentication and authorization core: password
// hashing, signed access tokens, credential checks at login, per-request
// identity resolution and the ownership/role decision used by every
// mutating operation.
//
// All types here are safe for concurrent use once constructed; none of them
// hold mutable state.
package auth

// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a credential record. HashedPassword is an encoded hash, never the
// plaintext.
type User struct {
	ID             int64     `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	IsAdmin        bool      `db:"is_admin"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
}

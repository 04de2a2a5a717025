// Package users stores credential records.
package users

import (
	"context"

	"github.com/dmitrijs2005/newsroom/internal/server/models"
)

// Repository is implemented by the PostgreSQL and in-memory stores.
// Lookups return common.ErrorNotFound for a missing row; Create returns
// common.ErrDuplicateIdentifier when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Package articles stores news articles.
package articles

import (
	"context"

	"github.com/dmitrijs2005/newsroom/internal/server/models"
)

// Repository is implemented by the PostgreSQL and in-memory stores. Get,
// Update and Delete return common.ErrorNotFound for a missing id.
type Repository interface {
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	List(ctx context.Context, offset, limit int) ([]*models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/dmitrijs2005/newsroom/internal/dbx"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/models"
	"github.com/dmitrijs2005/newsroom/internal/server/repositories/repomanager"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 100
)

// ArticleService implements article CRUD. Every mutation goes through
// auth.Authorize.
type ArticleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewArticleService(db *sql.DB, m repomanager.RepositoryManager) *ArticleService {
	return &ArticleService{db: db, repomanager: m}
}

func validateArticle(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", common.ErrorValidation)
	}
	return nil
}

// Create stores a new article owned by the caller.
func (s *ArticleService) Create(ctx context.Context, id *auth.Identity, title, content string) (*models.Article, error) {
	if err := auth.Authorize(id, auth.OpCreate, 0); err != nil {
		return nil, err
	}
	if err := validateArticle(title, content); err != nil {
		return nil, err
	}

	a, err := s.repomanager.Articles(s.db).Create(ctx, &models.Article{Title: title, Content: content, OwnerID: id.ID})
	if err != nil {
		return nil, fmt.Errorf("error creating article: %w", err)
	}
	return a, nil
}

// List pages through articles. A zero limit means DefaultListLimit; larger
// limits are capped at MaxListLimit.
func (s *ArticleService) List(ctx context.Context, skip, limit int) ([]*models.Article, error) {
	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", common.ErrorValidation)
	}
	switch {
	case limit < 0:
		return nil, fmt.Errorf("%w: limit must not be negative", common.ErrorValidation)
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	list, err := s.repomanager.Articles(s.db).List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing articles: %w", err)
	}
	return list, nil
}

func (s *ArticleService) Get(ctx context.Context, articleID int64) (*models.Article, error) {
	a, err := s.repomanager.Articles(s.db).Get(ctx, articleID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading article: %w", err)
	}
	return a, nil
}

// Update replaces title and content. Only the owner or an administrator may
// do so; a missing article is common.ErrorNotFound.
func (s *ArticleService) Update(ctx context.Context, id *auth.Identity, articleID int64, title, content string) (*models.Article, error) {
	if id == nil {
		return nil, common.ErrUnauthenticated
	}
	if err := validateArticle(title, content); err != nil {
		return nil, err
	}

	var out *models.Article
	err := s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Articles(tx)
		a, err := repo.Get(ctx, articleID)
		if err != nil {
			return err
		}
		if err := auth.Authorize(id, auth.OpUpdate, a.OwnerID); err != nil {
			return err
		}
		a.Title, a.Content = title, content
		out, err = repo.Update(ctx, a)
		return err
	})
	if err != nil {
		return nil, s.wrap("error updating article", err)
	}
	return out, nil
}

// Delete removes an article under the same rule as Update.
func (s *ArticleService) Delete(ctx context.Context, id *auth.Identity, articleID int64) error {
	if id == nil {
		return common.ErrUnauthenticated
	}

	err := s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Articles(tx)
		a, err := repo.Get(ctx, articleID)
		if err != nil {
			return err
		}
		if err := auth.Authorize(id, auth.OpDelete, a.OwnerID); err != nil {
			return err
		}
		return repo.Delete(ctx, articleID)
	})
	if err != nil {
		return s.wrap("error deleting article", err)
	}
	return nil
}

// wrap keeps sentinel errors bare so transports can map them.
func (s *ArticleService) wrap(msg string, err error) error {
	for _, sentinel := range []error{common.ErrorNotFound, common.ErrForbidden, common.ErrUnauthenticated} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

package repomanager

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/newsroom/internal/dbx"
	"github.com/dmitrijs2005/newsroom/internal/server/repositories/articles"
	"github.com/dmitrijs2005/newsroom/internal/server/repositories/users"
)

// MemoryRepositoryManager serves process-local repositories. The db handles
// passed to it are ignored; transactions are serialized, not isolated, and
// are not rolled back.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	articles *articles.MemoryRepository
	txMu     sync.Mutex
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		articles: articles.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Articles(dbx.DBTX) articles.Repository { return m.articles }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

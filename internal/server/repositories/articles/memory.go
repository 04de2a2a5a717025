package articles

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/dmitrijs2005/newsroom/internal/server/models"
)

// MemoryRepository keeps articles in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]*models.Article
	nextID int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[int64]*models.Article{}, now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now().UTC()
	a.ID, a.CreatedAt, a.UpdatedAt = r.nextID, now, now

	stored := *a
	r.items[a.ID] = &stored
	return a, nil
}

func (r *MemoryRepository) List(ctx context.Context, offset, limit int) ([]*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset < 0 {
		offset = 0
	}
	result := make([]*models.Article, 0)
	for i := offset; i < len(ids) && len(result) < limit; i++ {
		a := *r.items[ids[i]]
		result = append(result, &a)
	}
	r.mu.RUnlock()
	return result, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id int64) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := *stored
	return &a, nil
}

func (r *MemoryRepository) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[a.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Title, stored.Content = a.Title, a.Content
	stored.UpdatedAt = r.now().UTC()

	out := *stored
	return &out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

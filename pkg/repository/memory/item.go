package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

type itemRepository struct {
	mu     sync.RWMutex
	items  map[types.ItemID]*model.Item
	nextID int64
}

func newItemRepository() *itemRepository {
	return &itemRepository{
		items:  make(map[types.ItemID]*model.Item),
		nextID: 1,
	}
}

func copyItem(item *model.Item) *model.Item {
	copied := *item
	return &copied
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyItem(item)
	created.ID = types.NewItemID(r.nextID)
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.items[created.ID] = created
	return copyItem(created), nil
}

func (r *itemRepository) Get(ctx context.Context, id types.ItemID) (*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", id))
	}

	return copyItem(item), nil
}

func (r *itemRepository) List(ctx context.Context) ([]*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*model.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, copyItem(item))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[item.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", item.ID))
	}

	updated := copyItem(item)
	updated.Stock = existing.Stock // stock changes go through Deduct/AddStock
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.items[updated.ID] = updated
	return copyItem(updated), nil
}

func (r *itemRepository) Delete(ctx context.Context, id types.ItemID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", id))
	}

	delete(r.items, id)
	return nil
}

func (r *itemRepository) Deduct(ctx context.Context, id types.ItemID, qty int) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", id))
	}

	newStock := item.Stock - qty
	if newStock < 0 {
		newStock = 0
	}
	item.Stock = newStock
	item.UpdatedAt = time.Now().UTC()

	return copyItem(item), nil
}

func (r *itemRepository) AddStock(ctx context.Context, id types.ItemID, qty int) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "item not found", goerr.V("id", id))
	}

	item.Stock += qty
	item.UpdatedAt = time.Now().UTC()

	return copyItem(item), nil
}

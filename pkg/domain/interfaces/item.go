package interfaces

import (
	"context"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// ItemRepository defines the interface for Item data access
type ItemRepository interface {
	// Create creates a new item with an auto-generated ID
	Create(ctx context.Context, item *model.Item) (*model.Item, error)

	// Get retrieves an item by ID
	Get(ctx context.Context, id types.ItemID) (*model.Item, error)

	// List retrieves all items
	List(ctx context.Context) ([]*model.Item, error)

	// Update updates an existing item. Stock must be changed through
	// Deduct or AddStock so concurrent read-modify-writes cannot
	// interleave; Update preserves the stored stock value.
	Update(ctx context.Context, item *model.Item) (*model.Item, error)

	// Delete deletes an item by ID
	Delete(ctx context.Context, id types.ItemID) error

	// Deduct atomically applies max(stock-qty, 0) and stamps the update
	// time, returning the item after the deduction.
	Deduct(ctx context.Context, id types.ItemID, qty int) (*model.Item, error)

	// AddStock atomically increases stock by qty and stamps the update
	// time, returning the item after the increase.
	AddStock(ctx context.Context, id types.ItemID, qty int) (*model.Item, error)
}

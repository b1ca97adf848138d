package interfaces

import (
	"context"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// HistoryRepository defines the interface for the stock movement ledger.
// Inserts happen at the head so the visible order is newest-first without
// requiring a sort on read.
type HistoryRepository interface {
	// Append inserts a record at the head of the ledger, assigning its
	// ID, sequence number and timestamp.
	Append(ctx context.Context, rec *model.HistoryRecord) (*model.HistoryRecord, error)

	// Query retrieves records newest-first, applying the query filters
	Query(ctx context.Context, q model.HistoryQuery) ([]*model.HistoryRecord, error)

	// Get retrieves a record by ID
	Get(ctx context.Context, id types.HistoryID) (*model.HistoryRecord, error)

	// Update applies an admin correction to an existing record
	Update(ctx context.Context, rec *model.HistoryRecord) (*model.HistoryRecord, error)

	// Delete removes a record by ID
	Delete(ctx context.Context, id types.HistoryID) error
}

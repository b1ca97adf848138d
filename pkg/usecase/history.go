package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

// DefaultHistoryLimit caps a ledger read when the caller does not set one
const DefaultHistoryLimit = 50

// GetHistory reads the stock movement ledger newest-first
func (uc *UseCases) GetHistory(ctx context.Context, q model.HistoryQuery) ([]*model.HistoryRecord, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultHistoryLimit
	}

	records, err := uc.repo.History().Query(ctx, q)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query history")
	}
	return records, nil
}

// UpdateHistoryInput carries an admin correction to a ledger record. The
// identity and item fields of a record are immutable; only the movement
// itself can be corrected.
type UpdateHistoryInput struct {
	ID        types.HistoryID
	Qty       int
	Action    types.HistoryAction
	AdminNote string
}

func (uc *UseCases) UpdateHistory(ctx context.Context, in UpdateHistoryInput) (*model.HistoryRecord, error) {
	existing, err := uc.repo.History().Get(ctx, in.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get history record", goerr.V(HistoryIDKey, in.ID))
	}

	if in.Qty > 0 {
		existing.Qty = in.Qty
	}
	if in.Action != "" {
		if !in.Action.IsValid() {
			return nil, goerr.New("invalid history action", goerr.V("action", in.Action))
		}
		existing.Action = in.Action
	}
	if in.AdminNote != "" {
		existing.AdminNote = in.AdminNote
	}

	updated, err := uc.repo.History().Update(ctx, existing)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update history record", goerr.V(HistoryIDKey, in.ID))
	}
	return updated, nil
}

func (uc *UseCases) DeleteHistory(ctx context.Context, id types.HistoryID) error {
	if err := uc.repo.History().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete history record", goerr.V(HistoryIDKey, id))
	}
	return nil
}

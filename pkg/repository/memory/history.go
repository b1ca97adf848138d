package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arkade-store/stockroom/pkg/domain/model"
	"github.com/arkade-store/stockroom/pkg/domain/types"
)

type historyRepository struct {
	mu      sync.RWMutex
	records []*model.HistoryRecord // head of the slice is the newest record
	nextSeq int64
}

func newHistoryRepository() *historyRepository {
	return &historyRepository{
		nextSeq: 1,
	}
}

func copyRecord(rec *model.HistoryRecord) *model.HistoryRecord {
	copied := *rec
	return &copied
}

func (r *historyRepository) Append(ctx context.Context, rec *model.HistoryRecord) (*model.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRecord(rec)
	if created.ID == "" {
		created.ID = types.NewHistoryID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = time.Now().UTC()
	}
	created.Seq = r.nextSeq
	r.nextSeq++

	// Insert at the head: the visible order stays newest-first without a
	// sort on read.
	r.records = append([]*model.HistoryRecord{created}, r.records...)
	return copyRecord(created), nil
}

func (r *historyRepository) Query(ctx context.Context, q model.HistoryQuery) ([]*model.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var end time.Time
	if !q.End.IsZero() {
		end = q.End.AddDate(0, 0, 1) // inclusive of the whole end date
	}

	results := make([]*model.HistoryRecord, 0)
	for _, rec := range r.records {
		if q.EmployeeID != "" && rec.EmployeeID != q.EmployeeID {
			continue
		}
		if !q.Start.IsZero() && rec.Timestamp.Before(q.Start) {
			continue
		}
		if !end.IsZero() && rec.Timestamp.After(end) {
			continue
		}
		results = append(results, copyRecord(rec))
		if q.Limit > 0 && len(results) >= q.Limit {
			break
		}
	}

	return results, nil
}

func (r *historyRepository) Get(ctx context.Context, id types.HistoryID) (*model.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			return copyRecord(rec), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "history record not found", goerr.V("id", id))
}

func (r *historyRepository) Update(ctx context.Context, rec *model.HistoryRecord) (*model.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.records {
		if existing.ID == rec.ID {
			updated := copyRecord(rec)
			updated.Seq = existing.Seq
			updated.Timestamp = existing.Timestamp
			r.records[i] = updated
			return copyRecord(updated), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "history record not found", goerr.V("id", rec.ID))
}

func (r *historyRepository) Delete(ctx context.Context, id types.HistoryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}

	return goerr.Wrap(ErrNotFound, "history record not found", goerr.V("id", id))
}
